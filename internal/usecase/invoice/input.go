package invoice

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// Input is the editable body shared by create and full update.
type Input struct {
	InvoiceNumber string
	Status        string
	IssueDate     string
	DueDate       string
	BilledBy      models.Party
	BilledTo      models.Party
	Items         []domain.RawItem
	Notes         string
	Logo          string
	PaymentMethod *models.PaymentMethod
	ProjectID     *uint
}

// Scope identifies who acts and in which workspace.
type Scope struct {
	WorkspaceID uint
	UserID      uint
}

// apply validates in and writes the sanitized values onto inv. The invoice
// number, project link and logo upload are handled by the callers; the logo
// is left as submitted until offloadLogo runs.
func apply(inv *models.Invoice, in Input, loc *time.Location) error {

	billedTo := domain.SanitizeParty(in.BilledTo)
	if err := domain.ValidateBilledTo(billedTo); err != nil {
		return err
	}

	issue, ok := domain.ParseDate(in.IssueDate, loc)
	if !ok {
		return httperr.ErrBadRequest("invalid_issue_date", "Issue date must be YYYY-MM-DD")
	}
	if issue == nil {
		now := time.Now().In(loc)
		issue = &now
	}
	due, ok := domain.ParseDate(in.DueDate, loc)
	if !ok {
		return httperr.ErrBadRequest("invalid_due_date", "Due date must be YYYY-MM-DD")
	}

	logo := strings.TrimSpace(in.Logo)
	if err := media.ValidateImage(logo, media.MaxInvoiceLogoBytes, "Logo"); err != nil {
		return httperr.ErrBadRequest("invalid_logo", err.Error())
	}

	items := domain.SanitizeItems(in.Items)
	totals := domain.CalculateTotals(items)

	inv.Status = string(domain.StatusOrDraft(in.Status))
	inv.IssueDate = *issue
	inv.DueDate = due
	inv.BilledBy = domain.SanitizeParty(in.BilledBy)
	inv.BilledTo = billedTo
	inv.Items = items
	inv.Subtotal = totals.Subtotal
	inv.Total = totals.Total
	inv.Notes = strings.TrimSpace(in.Notes)
	inv.Logo = logo
	inv.PaymentMethod = domain.SanitizePaymentMethod(in.PaymentMethod)
	return nil
}

// offloadLogo uploads an inline logo. Callers run it after every check that
// can still reject the request so a refused write leaves no object behind.
func offloadLogo(ctx context.Context, inv *models.Invoice, offloader *media.Offloader) error {
	logo, err := offloader.Offload(ctx, inv.Logo, media.KindInvoiceLogo)
	if err != nil {
		return err
	}
	inv.Logo = logo
	return nil
}

// forget drops both public cache entries of inv.
func forget(ctx context.Context, c cache.Cache, inv *models.Invoice, extra ...string) {
	if c == nil {
		return
	}
	keys := []string{
		cache.InvoiceKey(strconv.FormatUint(uint64(inv.ID), 10)),
		cache.InvoiceKey(inv.InvoiceNumber),
	}
	for _, ref := range extra {
		keys = append(keys, cache.InvoiceKey(ref))
	}
	c.Delete(ctx, keys...)
}

func notFound() error {
	return httperr.ErrNotFound("invoice_not_found", "Invoice not found")
}
