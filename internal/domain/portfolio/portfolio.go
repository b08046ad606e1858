// Package portfolio validates the public profile page of a workspace.
package portfolio

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type Repository interface {
	GetByWorkspace(ctx context.Context, workspaceID uint) (*models.Portfolio, error)
	GetBySlug(ctx context.Context, slug string) (*models.Portfolio, error)
	// SlugTakenByOther reports whether a workspace other than workspaceID uses slug.
	SlugTakenByOther(ctx context.Context, slug string, workspaceID uint) (bool, error)
	Save(ctx context.Context, p *models.Portfolio) error
}

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)
)

// NormalizeSlug lowercases and trims s and checks the slug shape.
func NormalizeSlug(s string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if slug == "" {
		return "", httperr.ErrBadRequest("slug_required", "Slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return "", httperr.ErrBadRequest("invalid_slug", "Slug can only contain lowercase letters, numbers and hyphens")
	}
	return slug, nil
}

func IsHTTPURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ===============================
// Socials
// ===============================

type socialField struct {
	label string
	value *string
	check func(string) bool
}

func isWhatsApp(s string) bool {
	return phonePattern.MatchString(s) || IsHTTPURL(s)
}

// ValidateSocials trims every key and stops at the first invalid one.
func ValidateSocials(s models.Socials) (models.Socials, error) {
	fields := []socialField{
		{"Email", &s.Email, auth.IsEmailValid},
		{"WhatsApp", &s.WhatsApp, isWhatsApp},
		{"Instagram", &s.Instagram, IsHTTPURL},
		{"LinkedIn", &s.LinkedIn, IsHTTPURL},
		{"GitHub", &s.GitHub, IsHTTPURL},
		{"Twitter", &s.Twitter, IsHTTPURL},
		{"Facebook", &s.Facebook, IsHTTPURL},
		{"Dribbble", &s.Dribbble, IsHTTPURL},
		{"Behance", &s.Behance, IsHTTPURL},
		{"YouTube", &s.YouTube, IsHTTPURL},
		{"TikTok", &s.TikTok, IsHTTPURL},
		{"Website", &s.Website, IsHTTPURL},
	}

	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" || f.check(*f.value) {
			continue
		}
		return models.Socials{}, httperr.ErrBadRequest("invalid_social", invalidSocialMessage(f.label))
	}
	return s, nil
}

func invalidSocialMessage(label string) string {
	switch label {
	case "Email":
		return "Email must be a valid email address"
	case "WhatsApp":
		return "WhatsApp must be a valid phone number or URL"
	}
	return fmt.Sprintf("%s must be a valid http(s) URL", label)
}

// ===============================
// Links and images
// ===============================

// SanitizeLinks trims links, skips blank rows and validates the rest.
func SanitizeLinks(in []models.PortfolioLink) ([]models.PortfolioLink, error) {
	out := make([]models.PortfolioLink, 0, len(in))
	for i, l := range in {
		l.Name = strings.TrimSpace(l.Name)
		l.URL = strings.TrimSpace(l.URL)
		l.Icon = strings.TrimSpace(l.Icon)

		if l.Name == "" && l.URL == "" && l.Icon == "" {
			continue
		}
		if l.Name == "" {
			return nil, httperr.ErrBadRequest("invalid_link", fmt.Sprintf("Link %d name is required", i+1))
		}
		if !IsHTTPURL(l.URL) {
			return nil, httperr.ErrBadRequest("invalid_link", fmt.Sprintf("Link %d URL must be a valid http(s) URL", i+1))
		}
		if err := media.ValidateImage(l.Icon, media.MaxLinkIconBytes, fmt.Sprintf("Link %d icon", i+1)); err != nil {
			return nil, httperr.ErrBadRequest("invalid_link_icon", err.Error())
		}
		out = append(out, l)
	}
	return out, nil
}

func ValidateCover(cover string) error {
	if err := media.ValidateImage(strings.TrimSpace(cover), media.MaxPortfolioCoverBytes, "Cover image"); err != nil {
		return httperr.ErrBadRequest("invalid_cover", err.Error())
	}
	return nil
}
