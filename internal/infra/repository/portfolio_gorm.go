package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/portfolio"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type PortfolioGormRepository struct {
	db *gorm.DB
}

func NewPortfolioGormRepository(db *gorm.DB) *PortfolioGormRepository {
	return &PortfolioGormRepository{db: db}
}

func (r *PortfolioGormRepository) GetByWorkspace(
	ctx context.Context,
	workspaceID uint,
) (*models.Portfolio, error) {

	var p models.Portfolio
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioGormRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*models.Portfolio, error) {

	var p models.Portfolio
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioGormRepository) SlugTakenByOther(
	ctx context.Context,
	slug string,
	workspaceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("slug = ? AND workspace_id <> ?", slug, workspaceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PortfolioGormRepository) Save(
	ctx context.Context,
	p *models.Portfolio,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Compile-time check
var _ domain.Repository = (*PortfolioGormRepository)(nil)
