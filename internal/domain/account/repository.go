package account

import (
	"context"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// Repository loads and stores users and workspaces. Lookups that match
// nothing return gorm.ErrRecordNotFound.
type Repository interface {
	// -------- User --------
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UserIDExists(ctx context.Context, userID string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)

	// -------- Workspace --------
	GetWorkspaceByID(ctx context.Context, id uint) (*models.Workspace, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateWorkspace(ctx context.Context, ws *models.Workspace) error
	SaveWorkspace(ctx context.Context, ws *models.Workspace) error
	ListWorkspacesByIDs(ctx context.Context, ids []uint) ([]models.Workspace, error)
}
