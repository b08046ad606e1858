package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *AccountGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return r.exists(ctx, &models.User{}, "email = ?", email)
}

func (r *AccountGormRepository) UserIDExists(
	ctx context.Context,
	userID string,
) (bool, error) {
	return r.exists(ctx, &models.User{}, "user_id = ?", userID)
}

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AccountGormRepository) SaveUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *AccountGormRepository) DeleteUser(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *AccountGormRepository) ListUsersByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.User, error) {

	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Workspace
// --------------------------------------------------

func (r *AccountGormRepository) GetWorkspaceByID(
	ctx context.Context,
	id uint,
) (*models.Workspace, error) {

	var ws models.Workspace
	if err := r.db.WithContext(ctx).First(&ws, id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *AccountGormRepository) SlugExists(
	ctx context.Context,
	slug string,
) (bool, error) {
	return r.exists(ctx, &models.Workspace{}, "slug = ?", slug)
}

func (r *AccountGormRepository) CreateWorkspace(
	ctx context.Context,
	ws *models.Workspace,
) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *AccountGormRepository) SaveWorkspace(
	ctx context.Context,
	ws *models.Workspace,
) error {
	return r.db.WithContext(ctx).Save(ws).Error
}

func (r *AccountGormRepository) ListWorkspacesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Workspace, error) {

	var list []models.Workspace
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AccountGormRepository) exists(
	ctx context.Context,
	model any,
	query string,
	args ...any,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where(query, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
