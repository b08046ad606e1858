package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/portfolio"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/portfolio"
)

type PortfolioHandler struct {
	get       *portfolio.GetPortfolio
	save      *portfolio.SavePortfolio
	checkSlug *portfolio.CheckSlug
}

func NewPortfolioHandler(repo domain.Repository, c cache.Cache, offloader *media.Offloader) *PortfolioHandler {
	return &PortfolioHandler{
		get:       portfolio.NewGetPortfolio(repo),
		save:      portfolio.NewSavePortfolio(repo, c, offloader),
		checkSlug: portfolio.NewCheckSlug(repo),
	}
}

type SavePortfolioRequest struct {
	Slug        string                 `json:"slug" binding:"required"`
	DisplayName string                 `json:"displayName"`
	Headline    string                 `json:"headline"`
	Bio         string                 `json:"bio"`
	Cover       string                 `json:"cover"`
	IsPublished *bool                  `json:"isPublished"`
	Links       []models.PortfolioLink `json:"links"`
	Socials     models.Socials         `json:"socials"`
}

// Get answers 200 without data when the workspace has no portfolio yet.
func (h *PortfolioHandler) Get(c *gin.Context) {
	p, err := h.get.Execute(c.Request.Context(), workspaceID(c))
	if err != nil {
		httperr.Respond(c, err, "Failed to load portfolio")
		return
	}
	if p == nil {
		httpresp.OK(c, "No portfolio yet", nil)
		return
	}
	httpresp.OK(c, "Portfolio loaded", p)
}

func (h *PortfolioHandler) Save(c *gin.Context) {
	var req SavePortfolioRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.save.Execute(c.Request.Context(), portfolio.SaveInput{
		WorkspaceID: workspaceID(c),
		Slug:        req.Slug,
		DisplayName: req.DisplayName,
		Headline:    req.Headline,
		Bio:         req.Bio,
		Cover:       req.Cover,
		IsPublished: req.IsPublished,
		Links:       req.Links,
		Socials:     req.Socials,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to save portfolio")
		return
	}
	httpresp.OK(c, "Portfolio saved", p)
}

func (h *PortfolioHandler) CheckSlug(c *gin.Context) {
	out, err := h.checkSlug.Execute(c.Request.Context(), workspaceID(c), c.Query("slug"))
	if err != nil {
		httperr.Respond(c, err, "Failed to check slug")
		return
	}
	httpresp.OK(c, "Slug checked", out)
}
