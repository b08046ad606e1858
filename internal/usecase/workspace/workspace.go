package workspace

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

// ======================================================
// RENAME
// ======================================================

type Rename struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRename(repo domain.Repository, audit *audit.Dispatcher) *Rename {
	return &Rename{repo: repo, audit: audit}
}

func (uc *Rename) Execute(ctx context.Context, acc *Access, name string) (*models.Workspace, error) {
	if err := acc.requireOwner("rename the workspace"); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.ErrBadRequest("name_required", "Workspace name is required")
	}

	ws := acc.Workspace
	previous := ws.Name
	ws.Name = name
	if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &acc.User.ID,
		Action:      "workspace_renamed",
		Entity:      "workspace",
		EntityID:    &ws.ID,
		Metadata:    map[string]string{"from": previous, "to": name},
	})

	return ws, nil
}

// ======================================================
// LIST
// ======================================================

type Summary struct {
	ID       uint            `json:"_id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Role     permission.Role `json:"role"`
	IsActive bool            `json:"isActive"`
}

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// Execute lists every workspace the user belongs to, in id order.
func (uc *List) Execute(ctx context.Context, userID uint) ([]Summary, error) {
	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(user.Workspaces)+1)
	for _, m := range user.Workspaces {
		ids = append(ids, m.Workspace)
	}
	if user.WorkspaceID != nil {
		if _, ok := user.Membership(*user.WorkspaceID); !ok {
			ids = append(ids, *user.WorkspaceID)
		}
	}

	list, err := uc.repo.ListWorkspacesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(list))
	for i := range list {
		ws := &list[i]
		role, ok := domain.RoleOf(ws, user.ID)
		if !ok {
			continue
		}
		out = append(out, Summary{
			ID:       ws.ID,
			Name:     ws.Name,
			Slug:     ws.Slug,
			Role:     role,
			IsActive: user.WorkspaceID != nil && *user.WorkspaceID == ws.ID,
		})
	}
	return out, nil
}
