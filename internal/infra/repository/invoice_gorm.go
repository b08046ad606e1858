package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

func (r *InvoiceGormRepository) NumberExists(
	ctx context.Context,
	number string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InvoiceGormRepository) Create(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceGormRepository) Save(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceGormRepository) Delete(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Delete(inv).Error
}

// --------------------------------------------------
// Lookup (storage id or invoice number)
// --------------------------------------------------

func byRef(tx *gorm.DB, ref string) *gorm.DB {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return tx.Where("(id = ? OR invoice_number = ?)", id, ref)
	}
	return tx.Where("invoice_number = ?", ref)
}

func (r *InvoiceGormRepository) FindForWorkspace(
	ctx context.Context,
	workspaceID uint,
	ref string,
) (*models.Invoice, error) {

	var inv models.Invoice
	tx := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if err := byRef(tx, ref).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) FindPublic(
	ctx context.Context,
	ref string,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := byRef(r.db.WithContext(ctx), ref).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) List(
	ctx context.Context,
	workspaceID uint,
	status string,
) ([]models.Invoice, error) {

	invoices := []models.Invoice{}
	tx := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// --------------------------------------------------
// Project link
// --------------------------------------------------

func (r *InvoiceGormRepository) FindProject(
	ctx context.Context,
	workspaceID uint,
	projectID uint,
) (*models.Project, error) {

	var p models.Project
	if err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", projectID, workspaceID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *InvoiceGormRepository) LinkProject(
	ctx context.Context,
	projectID uint,
	invoiceID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND linked_invoice_id IS NULL", projectID).
		Update("linked_invoice_id", invoiceID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InvoiceGormRepository) UnlinkProjects(
	ctx context.Context,
	invoiceID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("linked_invoice_id = ?", invoiceID).
		Update("linked_invoice_id", nil).Error
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
