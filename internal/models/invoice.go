package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"_id"`
	WorkspaceID   uint   `gorm:"index;not null" json:"workspaceId"`
	InvoiceNumber string `gorm:"size:40;uniqueIndex;not null" json:"invoiceNumber"`
	Status        string `gorm:"size:10;default:'draft'" json:"status"`

	IssueDate time.Time  `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate"`

	BilledBy Party         `gorm:"type:jsonb;serializer:json" json:"billedBy"`
	BilledTo Party         `gorm:"type:jsonb;serializer:json" json:"billedTo"`
	Items    []InvoiceItem `gorm:"type:jsonb;serializer:json" json:"items"`

	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`

	Notes         string         `gorm:"type:text" json:"notes"`
	Logo          string         `gorm:"type:text" json:"logo"`
	PaymentMethod *PaymentMethod `gorm:"type:jsonb;serializer:json" json:"paymentMethod"`

	ProjectID *uint `gorm:"index" json:"projectId"`
	CreatedBy uint  `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Party is the billedBy / billedTo contact snapshot.
type Party struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	TaxID   string `json:"taxId"`
}

// InvoiceItem is a service line snapshot; it has no life outside its invoice.
type InvoiceItem struct {
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	Deliverables string  `json:"deliverables"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
	Subtotal     float64 `json:"subtotal"`
}

// ======================================================
// PAYMENT METHOD (tagged union on "type")
// ======================================================

type PaymentKind string

const (
	PaymentBankTransfer PaymentKind = "bank_transfer"
	PaymentEWallet      PaymentKind = "e_wallet"
)

// PaymentDetails is implemented by BankTransfer and EWallet only.
type PaymentDetails interface {
	Kind() PaymentKind
	paymentDetails()
}

type BankTransfer struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

func (BankTransfer) Kind() PaymentKind { return PaymentBankTransfer }
func (BankTransfer) paymentDetails()   {}

type EWallet struct {
	Provider    string `json:"provider"`
	AccountName string `json:"accountName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (EWallet) Kind() PaymentKind { return PaymentEWallet }
func (EWallet) paymentDetails()   {}

type PaymentMethod struct {
	Details PaymentDetails
}

type paymentMethodJSON struct {
	Type         PaymentKind   `json:"type"`
	BankTransfer *BankTransfer `json:"bankTransfer,omitempty"`
	EWallet      *EWallet      `json:"eWallet,omitempty"`
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	var out paymentMethodJSON
	switch d := p.Details.(type) {
	case BankTransfer:
		out.Type = PaymentBankTransfer
		out.BankTransfer = &d
	case EWallet:
		out.Type = PaymentEWallet
		out.EWallet = &d
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unsupported payment details %T", d)
	}
	return json.Marshal(out)
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var in paymentMethodJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Type {
	case PaymentBankTransfer:
		d := BankTransfer{}
		if in.BankTransfer != nil {
			d = *in.BankTransfer
		}
		p.Details = d
	case PaymentEWallet:
		d := EWallet{}
		if in.EWallet != nil {
			d = *in.EWallet
		}
		p.Details = d
	case "":
		p.Details = nil
	default:
		return fmt.Errorf("unknown payment method type %q", in.Type)
	}
	return nil
}
