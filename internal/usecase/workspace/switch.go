package workspace

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type SwitchResult struct {
	User      *models.User      `json:"user"`
	Workspace *models.Workspace `json:"workspace"`
	Token     string            `json:"token"`
}

type Switch struct {
	repo    domain.Repository
	tokens  *auth.TokenService
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

func NewSwitch(
	repo domain.Repository,
	tokens *auth.TokenService,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *Switch {
	return &Switch{repo: repo, tokens: tokens, audit: audit, metrics: m}
}

func (uc *Switch) Execute(ctx context.Context, userID uint, workspaceID uint) (*SwitchResult, error) {
	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ws, err := uc.repo.GetWorkspaceByID(ctx, workspaceID)
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

	// --------------------------------------------------
	// Already active: nothing to change
	// --------------------------------------------------
	if user.WorkspaceID != nil && *user.WorkspaceID == ws.ID {
		token, err := uc.tokens.Issue(auth.Identity{UserID: user.ID, WorkspaceID: &ws.ID})
		if err != nil {
			return nil, err
		}
		return &SwitchResult{User: user, Workspace: ws, Token: token}, nil
	}

	joinedAt := time.Now()
	if m, ok := ws.Member(user.ID); ok && !m.JoinedAt.IsZero() {
		joinedAt = m.JoinedAt
	} else if m, ok := user.Membership(ws.ID); ok && !m.JoinedAt.IsZero() {
		joinedAt = m.JoinedAt
	}

	domain.SetPrimary(user, ws.ID, role, joinedAt)
	domain.AddUserMembership(user, ws.ID, role, joinedAt)
	if domain.AddWorkspaceMember(ws, user.ID, role, joinedAt, nil) {
		if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(auth.Identity{UserID: user.ID, WorkspaceID: &ws.ID})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncWorkspaceSwitch()
	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &user.ID,
		Action:      "workspace_switched",
		Entity:      "workspace",
		EntityID:    &ws.ID,
	})

	return &SwitchResult{User: user, Workspace: ws, Token: token}, nil
}
