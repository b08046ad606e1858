package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateInvoice struct {
	repo      domain.Repository
	offloader *media.Offloader
	audit     *audit.Dispatcher
	metrics   *metrics.Metrics
	loc       *time.Location
}

func NewCreateInvoice(
	repo domain.Repository,
	offloader *media.Offloader,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	loc *time.Location,
) *CreateInvoice {
	if loc == nil {
		loc = time.UTC
	}
	return &CreateInvoice{
		repo:      repo,
		offloader: offloader,
		audit:     audit,
		metrics:   m,
		loc:       loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateInvoice) Execute(ctx context.Context, scope Scope, in Input) (*models.Invoice, error) {
	inv := &models.Invoice{
		WorkspaceID: scope.WorkspaceID,
		CreatedBy:   scope.UserID,
	}

	// --------------------------------------------------
	// 1. Body
	// --------------------------------------------------
	if err := apply(inv, in, uc.loc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Project link (checked at creation only)
	// --------------------------------------------------
	if in.ProjectID != nil {
		project, err := uc.repo.FindProject(ctx, scope.WorkspaceID, *in.ProjectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("project_not_found", "Project not found")
		}
		if err != nil {
			return nil, err
		}
		if project.LinkedInvoiceID != nil {
			return nil, httperr.ErrConflict("project_already_invoiced", "Project already has an invoice")
		}
		inv.ProjectID = &project.ID
	}

	// --------------------------------------------------
	// 3. Number
	// --------------------------------------------------
	number, err := uc.number(ctx, in.InvoiceNumber, inv.IssueDate)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = number

	// --------------------------------------------------
	// 4. Persist
	// --------------------------------------------------
	if err := offloadLogo(ctx, inv, uc.offloader); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if inv.ProjectID != nil {
		linked, err := uc.repo.LinkProject(ctx, *inv.ProjectID, inv.ID)
		if err != nil {
			return nil, err
		}
		if !linked {
			zerolog.Ctx(ctx).Warn().
				Uint("project_id", *inv.ProjectID).
				Str("invoice_number", inv.InvoiceNumber).
				Msg("project was linked to another invoice concurrently")
		}
	}

	uc.metrics.IncInvoiceCreated()
	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: scope.WorkspaceID,
		UserID:      &scope.UserID,
		Action:      "invoice_created",
		Entity:      "invoice",
		EntityID:    &inv.ID,
		Metadata:    map[string]string{"invoiceNumber": inv.InvoiceNumber},
	})

	return inv, nil
}

// number uses an explicit value as-is after a uniqueness pre-check, or
// generates one from the issue date.
func (uc *CreateInvoice) number(ctx context.Context, explicit string, issued time.Time) (string, error) {
	if n := domain.NormalizeNumber(explicit); n != "" {
		taken, err := uc.repo.NumberExists(ctx, n)
		if err != nil {
			return "", err
		}
		if taken {
			return "", httperr.ErrBadRequest("invoice_number_taken", "Invoice number already exists")
		}
		return n, nil
	}

	gen := domain.NumberGenerator{Exists: uc.repo.NumberExists}
	return gen.Generate(ctx, issued.In(uc.loc))
}
