package invoice

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// ======================================================
// FULL UPDATE
// ======================================================

type UpdateInvoice struct {
	repo      domain.Repository
	cache     cache.Cache
	offloader *media.Offloader
	loc       *time.Location
}

func NewUpdateInvoice(
	repo domain.Repository,
	c cache.Cache,
	offloader *media.Offloader,
	loc *time.Location,
) *UpdateInvoice {
	if loc == nil {
		loc = time.UTC
	}
	return &UpdateInvoice{repo: repo, cache: c, offloader: offloader, loc: loc}
}

func (uc *UpdateInvoice) Execute(ctx context.Context, scope Scope, ref string, in Input) (*models.Invoice, error) {
	inv, err := find(ctx, uc.repo, scope, ref)
	if err != nil {
		return nil, err
	}
	previous := inv.InvoiceNumber

	if err := apply(inv, in, uc.loc); err != nil {
		return nil, err
	}

	if n := domain.NormalizeNumber(in.InvoiceNumber); n != "" && n != inv.InvoiceNumber {
		taken, err := uc.repo.NumberExists(ctx, n)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrBadRequest("invoice_number_taken", "Invoice number already exists")
		}
		inv.InvoiceNumber = n
	}

	if err := offloadLogo(ctx, inv, uc.offloader); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	forget(ctx, uc.cache, inv, previous)
	return inv, nil
}

// ======================================================
// STATUS ONLY
// ======================================================

type UpdateInvoiceStatus struct {
	repo  domain.Repository
	cache cache.Cache
}

func NewUpdateInvoiceStatus(repo domain.Repository, c cache.Cache) *UpdateInvoiceStatus {
	return &UpdateInvoiceStatus{repo: repo, cache: c}
}

// Execute rejects unknown values instead of falling back to draft.
func (uc *UpdateInvoiceStatus) Execute(ctx context.Context, scope Scope, ref string, status string) (*models.Invoice, error) {
	st, ok := domain.ParseStatus(status)
	if !ok {
		return nil, httperr.ErrBadRequest("invalid_status", "Status must be one of draft, sent, paid")
	}

	inv, err := find(ctx, uc.repo, scope, ref)
	if err != nil {
		return nil, err
	}

	inv.Status = string(st)
	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	forget(ctx, uc.cache, inv)
	return inv, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteInvoice struct {
	repo  domain.Repository
	cache cache.Cache
	audit *audit.Dispatcher
}

func NewDeleteInvoice(repo domain.Repository, c cache.Cache, audit *audit.Dispatcher) *DeleteInvoice {
	return &DeleteInvoice{repo: repo, cache: c, audit: audit}
}

func (uc *DeleteInvoice) Execute(ctx context.Context, scope Scope, ref string) error {
	inv, err := find(ctx, uc.repo, scope, ref)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, inv); err != nil {
		return err
	}
	if err := uc.repo.UnlinkProjects(ctx, inv.ID); err != nil {
		return err
	}

	forget(ctx, uc.cache, inv)
	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: scope.WorkspaceID,
		UserID:      &scope.UserID,
		Action:      "invoice_deleted",
		Entity:      "invoice",
		EntityID:    &inv.ID,
		Metadata:    map[string]string{"invoiceNumber": inv.InvoiceNumber},
	})
	return nil
}

// ======================================================
// READ
// ======================================================

type GetInvoice struct {
	repo domain.Repository
}

func NewGetInvoice(repo domain.Repository) *GetInvoice {
	return &GetInvoice{repo: repo}
}

func (uc *GetInvoice) Execute(ctx context.Context, scope Scope, ref string) (*models.Invoice, error) {
	return find(ctx, uc.repo, scope, ref)
}

type ListInvoices struct {
	repo domain.Repository
}

func NewListInvoices(repo domain.Repository) *ListInvoices {
	return &ListInvoices{repo: repo}
}

// Execute filters by status when one is given.
func (uc *ListInvoices) Execute(ctx context.Context, scope Scope, status string) ([]models.Invoice, error) {
	filter := ""
	if status != "" {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return nil, httperr.ErrBadRequest("invalid_status", "Status must be one of draft, sent, paid")
		}
		filter = string(st)
	}
	return uc.repo.List(ctx, scope.WorkspaceID, filter)
}

type GetPublicInvoice struct {
	repo domain.Repository
}

func NewGetPublicInvoice(repo domain.Repository) *GetPublicInvoice {
	return &GetPublicInvoice{repo: repo}
}

func (uc *GetPublicInvoice) Execute(ctx context.Context, ref string) (*models.Invoice, error) {
	inv, err := uc.repo.FindPublic(ctx, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return inv, err
}

func find(ctx context.Context, repo domain.Repository, scope Scope, ref string) (*models.Invoice, error) {
	inv, err := repo.FindForWorkspace(ctx, scope.WorkspaceID, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return inv, err
}
