package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/middleware"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/account"
)

type AuthHandler struct {
	register       *account.Register
	login          *account.Login
	currentSession *account.CurrentSession
	updateProfile  *account.UpdateProfile
	changePassword *account.ChangePassword

	cookieSecure bool
}

func NewAuthHandler(
	repo domain.Repository,
	tokens *auth.TokenService,
	catalog *permission.Catalog,
	m *metrics.Metrics,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		register:       account.NewRegister(repo, tokens, catalog, m),
		login:          account.NewLogin(repo, tokens, m),
		currentSession: account.NewCurrentSession(repo),
		updateProfile:  account.NewUpdateProfile(repo),
		changePassword: account.NewChangePassword(repo),
		cookieSecure:   cookieSecure,
	}
}

// WithEmailDomainCheck makes registration reject undeliverable domains.
func (h *AuthHandler) WithEmailDomainCheck(check account.DomainCheck) *AuthHandler {
	h.register.WithDomainCheck(check)
	return h
}

// --------- Requests ---------

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Bio      *string `json:"bio"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err, "Registration failed")
		return
	}

	h.setTokenCookie(c, session.Token)
	httpresp.Created(c, "Registration successful", session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), account.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err, "Login failed")
		return
	}

	h.setTokenCookie(c, session.Token)
	httpresp.OK(c, "Login successful", session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", h.cookieSecure, true)
	httpresp.OK(c, "Logged out", nil)
}

// VerifyToken reaches here only with a valid token; it returns the fresh
// user and workspace so clients can rehydrate.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	session, err := h.currentSession.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "Failed to verify token")
		return
	}
	httpresp.OK(c, "Token is valid", session)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	session, err := h.currentSession.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "Failed to load profile")
		return
	}
	httpresp.OK(c, "Profile loaded", session)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.updateProfile.Execute(c.Request.Context(), account.UpdateProfileInput{
		UserID:   middleware.UserID(c),
		FullName: req.FullName,
		Phone:    req.Phone,
		Bio:      req.Bio,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to update profile")
		return
	}
	httpresp.OK(c, "Profile updated", session)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), account.ChangePasswordInput{
		UserID:          middleware.UserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to change password")
		return
	}
	httpresp.OK(c, "Password changed", nil)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	setTokenCookie(c, token, h.cookieSecure)
}

func setTokenCookie(c *gin.Context, token string, secure bool) {
	if token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, token, int(auth.TokenTTL.Seconds()), "/", "", secure, true)
}
