package invoice

import (
	"strings"

	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

func SanitizeParty(p models.Party) models.Party {
	return models.Party{
		Name:    strings.TrimSpace(p.Name),
		Company: strings.TrimSpace(p.Company),
		Email:   strings.TrimSpace(p.Email),
		Phone:   strings.TrimSpace(p.Phone),
		Address: strings.TrimSpace(p.Address),
		City:    strings.TrimSpace(p.City),
		Country: strings.TrimSpace(p.Country),
		TaxID:   strings.TrimSpace(p.TaxID),
	}
}

// ValidateBilledTo requires a name or a company on the recipient.
func ValidateBilledTo(p models.Party) error {
	if p.Name == "" && p.Company == "" {
		return httperr.ErrBadRequest("billed_to_required", "Billed to name or company is required")
	}
	return nil
}

// SanitizePaymentMethod trims every detail field; nil stays nil.
func SanitizePaymentMethod(pm *models.PaymentMethod) *models.PaymentMethod {
	if pm == nil || pm.Details == nil {
		return nil
	}

	switch d := pm.Details.(type) {
	case models.BankTransfer:
		return &models.PaymentMethod{Details: models.BankTransfer{
			BankName:      strings.TrimSpace(d.BankName),
			AccountName:   strings.TrimSpace(d.AccountName),
			AccountNumber: strings.TrimSpace(d.AccountNumber),
		}}
	case models.EWallet:
		return &models.PaymentMethod{Details: models.EWallet{
			Provider:    strings.TrimSpace(d.Provider),
			AccountName: strings.TrimSpace(d.AccountName),
			PhoneNumber: strings.TrimSpace(d.PhoneNumber),
		}}
	}
	return nil
}
