package workspace

import (
	"context"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

type PermissionsView struct {
	Menus         []permission.Menu `json:"menus"`
	Permissions   permission.Set    `json:"permissions"`
	EditableRoles []permission.Role `json:"editableRoles"`
	Role          permission.Role   `json:"role"`
	Allowed       []string          `json:"allowed"`
}

func permissionsView(c *permission.Catalog, acc *Access) *PermissionsView {
	perms := c.Normalize(acc.Workspace.Permissions)
	return &PermissionsView{
		Menus:         c.Menus(),
		Permissions:   perms,
		EditableRoles: permission.EditableRoles(),
		Role:          acc.Role,
		Allowed:       perms.For(acc.Role),
	}
}

type GetPermissions struct {
	catalog *permission.Catalog
}

func NewGetPermissions(catalog *permission.Catalog) *GetPermissions {
	return &GetPermissions{catalog: catalog}
}

func (uc *GetPermissions) Execute(_ context.Context, acc *Access) *PermissionsView {
	return permissionsView(uc.catalog, acc)
}

// UpdatePermissionsInput: a nil list leaves that role unchanged.
type UpdatePermissionsInput struct {
	Manager []string
	Member  []string
}

type UpdatePermissions struct {
	repo    domain.Repository
	catalog *permission.Catalog
	audit   *audit.Dispatcher
}

func NewUpdatePermissions(
	repo domain.Repository,
	catalog *permission.Catalog,
	audit *audit.Dispatcher,
) *UpdatePermissions {
	return &UpdatePermissions{repo: repo, catalog: catalog, audit: audit}
}

func (uc *UpdatePermissions) Execute(ctx context.Context, acc *Access, in UpdatePermissionsInput) (*PermissionsView, error) {
	if err := acc.requireOwner("edit permissions"); err != nil {
		return nil, err
	}

	ws := acc.Workspace
	current := uc.catalog.Normalize(ws.Permissions)

	next := permission.Set{Manager: current.Manager, Member: current.Member}
	if in.Manager != nil {
		next.Manager = in.Manager
	}
	if in.Member != nil {
		next.Member = in.Member
	}
	ws.Permissions = uc.catalog.Normalize(next)

	if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &acc.User.ID,
		Action:      "permissions_updated",
		Entity:      "workspace",
		EntityID:    &ws.ID,
		Metadata:    ws.Permissions,
	})

	return permissionsView(uc.catalog, acc), nil
}
