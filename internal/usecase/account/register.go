package account

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/identifier"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

const (
	UserIDDigits     = 6
	slugSuffixDigits = 4
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type Session struct {
	User      *models.User      `json:"user"`
	Workspace *models.Workspace `json:"workspace"`
	Token     string            `json:"token,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo    domain.Repository
	tokens  *auth.TokenService
	catalog *permission.Catalog
	metrics *metrics.Metrics

	domainCheck DomainCheck
}

// DomainCheck reports whether an email's domain can receive mail.
type DomainCheck func(ctx context.Context, email string) bool

func NewRegister(
	repo domain.Repository,
	tokens *auth.TokenService,
	catalog *permission.Catalog,
	m *metrics.Metrics,
) *Register {
	return &Register{
		repo:    repo,
		tokens:  tokens,
		catalog: catalog,
		metrics: m,
	}
}

// WithDomainCheck rejects addresses whose domain fails check.
func (uc *Register) WithDomainCheck(check DomainCheck) *Register {
	uc.domainCheck = check
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, httperr.ErrBadRequest("full_name_required", "Full name is required")
	}

	email := auth.NormalizeEmail(in.Email)
	if !auth.IsEmailValid(email) {
		return nil, httperr.ErrBadRequest("invalid_email", "Please provide a valid email address")
	}
	if uc.domainCheck != nil && !uc.domainCheck(ctx, email) {
		return nil, httperr.ErrBadRequest("invalid_email_domain", "The email domain does not appear to accept mail")
	}

	if err := auth.CheckPasswordPolicy(in.Password); err != nil {
		return nil, httperr.ErrBadRequest("weak_password", err.Error())
	}

	taken, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBadRequest("email_taken", "Email is already registered")
	}

	// --------------------------------------------------
	// 2. User
	// --------------------------------------------------
	userID, err := identifier.Unique(ctx, identifier.DefaultAttempts, func() string {
		return identifier.Digits(UserIDDigits)
	}, uc.repo.UserIDExists)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:       userID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Owned workspace (user removed again on failure)
	// --------------------------------------------------
	now := time.Now()
	ws, err := uc.createWorkspace(ctx, user, now)
	if err != nil {
		if delErr := uc.repo.DeleteUser(ctx, user.ID); delErr != nil {
			zerolog.Ctx(ctx).Error().Err(delErr).Uint("user_id", user.ID).Msg("failed to remove user after workspace creation error")
		}
		return nil, err
	}

	domain.SetPrimary(user, ws.ID, permission.RoleOwner, now)
	domain.AddUserMembership(user, ws.ID, permission.RoleOwner, now)
	if err := uc.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Token
	// --------------------------------------------------
	token, err := uc.tokens.Issue(auth.Identity{UserID: user.ID, WorkspaceID: &ws.ID})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncRegistration()

	return &Session{User: user, Workspace: ws, Token: token}, nil
}

func (uc *Register) createWorkspace(ctx context.Context, owner *models.User, now time.Time) (*models.Workspace, error) {
	name := domain.DefaultWorkspaceName(owner.FullName)
	base := domain.Slugify(owner.FullName)

	slug, err := identifier.Unique(ctx, identifier.DefaultAttempts, func() string {
		return base + "-" + identifier.Digits(slugSuffixDigits)
	}, uc.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	ws := &models.Workspace{
		Name:        name,
		Slug:        slug,
		Plan:        "free",
		Status:      "active",
		OwnerID:     owner.ID,
		Permissions: uc.catalog.Defaults(),
	}
	domain.AddWorkspaceMember(ws, owner.ID, permission.RoleOwner, now, nil)

	if err := uc.repo.CreateWorkspace(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}
