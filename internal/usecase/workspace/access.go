package workspace

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

// Access is the caller's standing inside the active workspace.
type Access struct {
	User      *models.User
	Workspace *models.Workspace
	Role      permission.Role

	// Permissions is the workspace's stored set after catalog normalization,
	// the same set GET /workspace/permissions shows.
	Permissions permission.Set
}

func (a *Access) IsOwner() bool {
	return a.Role == permission.RoleOwner
}

func (a *Access) Can(menuKey string) bool {
	return permission.CanAccess(a.Role, a.Permissions, menuKey)
}

func (a *Access) requireOwner(action string) error {
	if !a.IsOwner() {
		return httperr.ErrForbidden("owner_only", "Only the workspace owner can "+action)
	}
	return nil
}

type ResolveAccess struct {
	repo    domain.Repository
	catalog *permission.Catalog
}

func NewResolveAccess(repo domain.Repository, catalog *permission.Catalog) *ResolveAccess {
	return &ResolveAccess{repo: repo, catalog: catalog}
}

// Execute resolves the workspace carried by the token, or the user's
// primary workspace when the token has none.
func (uc *ResolveAccess) Execute(ctx context.Context, userID uint, workspaceID *uint) (*Access, error) {
	user, err := uc.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrUnauthorized("user_not_found", "User no longer exists")
	}
	if err != nil {
		return nil, err
	}

	wsID := workspaceID
	if wsID == nil {
		wsID = user.WorkspaceID
	}
	if wsID == nil {
		return nil, httperr.ErrForbidden("no_workspace", "No active workspace")
	}

	ws, err := uc.repo.GetWorkspaceByID(ctx, *wsID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("workspace_not_found", "Workspace not found")
	}
	if err != nil {
		return nil, err
	}

	role, ok := domain.RoleOf(ws, user.ID)
	if !ok {
		return nil, httperr.ErrForbidden("not_member", "You are not a member of this workspace")
	}

	return &Access{
		User:        user,
		Workspace:   ws,
		Role:        role,
		Permissions: uc.catalog.Normalize(ws.Permissions),
	}, nil
}
