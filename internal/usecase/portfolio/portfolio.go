package portfolio

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/portfolio"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

// ======================================================
// READ (owner side)
// ======================================================

type GetPortfolio struct {
	repo domain.Repository
}

func NewGetPortfolio(repo domain.Repository) *GetPortfolio {
	return &GetPortfolio{repo: repo}
}

// Execute returns nil, nil when the workspace has no portfolio yet.
func (uc *GetPortfolio) Execute(ctx context.Context, workspaceID uint) (*models.Portfolio, error) {
	p, err := uc.repo.GetByWorkspace(ctx, workspaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return p, err
}

// ======================================================
// SAVE (upsert, one per workspace)
// ======================================================

type SaveInput struct {
	WorkspaceID uint
	Slug        string
	DisplayName string
	Headline    string
	Bio         string
	Cover       string
	IsPublished *bool
	Links       []models.PortfolioLink
	Socials     models.Socials
}

type SavePortfolio struct {
	repo      domain.Repository
	cache     cache.Cache
	offloader *media.Offloader
}

func NewSavePortfolio(repo domain.Repository, c cache.Cache, offloader *media.Offloader) *SavePortfolio {
	return &SavePortfolio{repo: repo, cache: c, offloader: offloader}
}

func (uc *SavePortfolio) Execute(ctx context.Context, in SaveInput) (*models.Portfolio, error) {

	// --------------------------------------------------
	// 1. Slug (unique across workspaces)
	// --------------------------------------------------
	slug, err := domain.NormalizeSlug(in.Slug)
	if err != nil {
		return nil, err
	}
	taken, err := uc.repo.SlugTakenByOther(ctx, slug, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBadRequest("slug_taken", "This slug is already in use")
	}

	// --------------------------------------------------
	// 2. Content
	// --------------------------------------------------
	socials, err := domain.ValidateSocials(in.Socials)
	if err != nil {
		return nil, err
	}
	links, err := domain.SanitizeLinks(in.Links)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateCover(in.Cover); err != nil {
		return nil, err
	}

	cover, err := uc.offloader.Offload(ctx, strings.TrimSpace(in.Cover), media.KindPortfolioCover)
	if err != nil {
		return nil, err
	}
	for i := range links {
		if links[i].Icon, err = uc.offloader.Offload(ctx, links[i].Icon, media.KindLinkIcon); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Upsert
	// --------------------------------------------------
	p, err := uc.repo.GetByWorkspace(ctx, in.WorkspaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = &models.Portfolio{WorkspaceID: in.WorkspaceID, IsPublished: true}
	} else if err != nil {
		return nil, err
	}
	previousSlug := p.Slug

	p.Slug = slug
	p.DisplayName = strings.TrimSpace(in.DisplayName)
	p.Headline = strings.TrimSpace(in.Headline)
	p.Bio = strings.TrimSpace(in.Bio)
	p.Cover = cover
	p.Links = links
	p.Socials = socials
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}

	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		keys := []string{cache.PortfolioKey(slug)}
		if previousSlug != "" && previousSlug != slug {
			keys = append(keys, cache.PortfolioKey(previousSlug))
		}
		uc.cache.Delete(ctx, keys...)
	}
	return p, nil
}

// ======================================================
// SLUG AVAILABILITY
// ======================================================

type SlugAvailability struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

type CheckSlug struct {
	repo domain.Repository
}

func NewCheckSlug(repo domain.Repository) *CheckSlug {
	return &CheckSlug{repo: repo}
}

// Execute never fails on a malformed slug; it reports it as unavailable.
func (uc *CheckSlug) Execute(ctx context.Context, workspaceID uint, raw string) (*SlugAvailability, error) {
	slug, err := domain.NormalizeSlug(raw)
	if err != nil {
		return &SlugAvailability{Slug: strings.TrimSpace(raw), Message: err.Error()}, nil
	}

	taken, err := uc.repo.SlugTakenByOther(ctx, slug, workspaceID)
	if err != nil {
		return nil, err
	}
	out := &SlugAvailability{Slug: slug, Available: !taken}
	if taken {
		out.Message = "This slug is already in use"
	}
	return out, nil
}

// ======================================================
// PUBLIC READ
// ======================================================

type GetPublicPortfolio struct {
	repo domain.Repository
}

func NewGetPublicPortfolio(repo domain.Repository) *GetPublicPortfolio {
	return &GetPublicPortfolio{repo: repo}
}

// Execute hides unpublished portfolios behind the same 404.
func (uc *GetPublicPortfolio) Execute(ctx context.Context, slug string) (*models.Portfolio, error) {
	p, err := uc.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !p.IsPublished) {
		return nil, httperr.ErrNotFound("portfolio_not_found", "Portfolio not found")
	}
	return p, err
}
