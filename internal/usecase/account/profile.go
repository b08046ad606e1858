package account

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
)

// ======================================================
// CURRENT SESSION (verify-token / profile read)
// ======================================================

type CurrentSession struct {
	repo domain.Repository
}

func NewCurrentSession(repo domain.Repository) *CurrentSession {
	return &CurrentSession{repo: repo}
}

func (uc *CurrentSession) Execute(ctx context.Context, userID uint) (*Session, error) {
	user, err := uc.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrUnauthorized("user_not_found", "User no longer exists")
	}
	if err != nil {
		return nil, err
	}

	ws, err := primaryWorkspace(ctx, uc.repo, user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Workspace: ws}, nil
}

// ======================================================
// PROFILE UPDATE
// ======================================================

// UpdateProfileInput leaves nil fields untouched. Email is immutable.
type UpdateProfileInput struct {
	UserID   uint
	FullName *string
	Phone    *string
	Bio      *string
}

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(ctx context.Context, in UpdateProfileInput) (*Session, error) {
	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, httperr.ErrBadRequest("full_name_required", "Full name cannot be empty")
		}
		user.FullName = name
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := uc.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	ws, err := primaryWorkspace(ctx, uc.repo, user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Workspace: ws}, nil
}

// ======================================================
// PASSWORD CHANGE
// ======================================================

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePassword struct {
	repo domain.Repository
}

func NewChangePassword(repo domain.Repository) *ChangePassword {
	return &ChangePassword{repo: repo}
}

func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(in.CurrentPassword, user.PasswordHash) {
		return httperr.ErrBadRequest("wrong_password", "Current password is incorrect")
	}
	if err := auth.CheckPasswordPolicy(in.NewPassword); err != nil {
		return httperr.ErrBadRequest("weak_password", err.Error())
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return uc.repo.SaveUser(ctx, user)
}
