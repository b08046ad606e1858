package invoice

import (
	"context"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type Repository interface {
	// Global across workspaces.
	NumberExists(ctx context.Context, number string) (bool, error)

	Create(ctx context.Context, inv *models.Invoice) error
	Save(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, inv *models.Invoice) error

	// ref is the storage id or the invoice number.
	FindForWorkspace(ctx context.Context, workspaceID uint, ref string) (*models.Invoice, error)
	FindPublic(ctx context.Context, ref string) (*models.Invoice, error)
	List(ctx context.Context, workspaceID uint, status string) ([]models.Invoice, error)

	FindProject(ctx context.Context, workspaceID uint, projectID uint) (*models.Project, error)
	// LinkProject reports false when the project already links an invoice.
	LinkProject(ctx context.Context, projectID uint, invoiceID uint) (bool, error)
	UnlinkProjects(ctx context.Context, invoiceID uint) error
}
