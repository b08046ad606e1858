package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

var errBadCredentials = httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password")

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	repo    domain.Repository
	tokens  *auth.TokenService
	metrics *metrics.Metrics
}

func NewLogin(repo domain.Repository, tokens *auth.TokenService, m *metrics.Metrics) *Login {
	return &Login{repo: repo, tokens: tokens, metrics: m}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := uc.repo.GetUserByEmail(ctx, auth.NormalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		uc.metrics.IncLogin(false)
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		uc.metrics.IncLogin(false)
		return nil, errBadCredentials
	}

	token, err := uc.tokens.Issue(auth.Identity{UserID: user.ID, WorkspaceID: user.WorkspaceID})
	if err != nil {
		return nil, err
	}

	ws, err := primaryWorkspace(ctx, uc.repo, user)
	if err != nil {
		return nil, err
	}

	uc.metrics.IncLogin(true)
	return &Session{User: user, Workspace: ws, Token: token}, nil
}

// primaryWorkspace loads the user's active workspace; a dangling reference
// yields nil rather than an error.
func primaryWorkspace(ctx context.Context, repo domain.Repository, u *models.User) (*models.Workspace, error) {
	if u.WorkspaceID == nil {
		return nil, nil
	}
	ws, err := repo.GetWorkspaceByID(ctx, *u.WorkspaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return ws, err
}
