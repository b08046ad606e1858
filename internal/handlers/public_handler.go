package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	invoicedomain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	portfoliodomain "github.com/BruksfildServices01/freelance-desk/internal/domain/portfolio"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/portfolio"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated pages. Invoice and portfolio
// reads go through the cache; writes elsewhere invalidate it.
type PublicHandler struct {
	db        *gorm.DB
	cache     cache.Cache
	metrics   *metrics.Metrics
	invoice   *invoice.GetPublicInvoice
	portfolio *portfolio.GetPublicPortfolio
	now       func() time.Time
}

func NewPublicHandler(
	db *gorm.DB,
	invoices invoicedomain.Repository,
	portfolios portfoliodomain.Repository,
	c cache.Cache,
	m *metrics.Metrics,
) *PublicHandler {
	if c == nil {
		c = cache.Nop{}
	}
	return &PublicHandler{
		db:        db,
		cache:     c,
		metrics:   m,
		invoice:   invoice.NewGetPublicInvoice(invoices),
		portfolio: portfolio.NewGetPublicPortfolio(portfolios),
		now:       time.Now,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// PublicProject is what a client sees on the status page.
type PublicProject struct {
	NumberOrder   string                  `json:"numberOrder"`
	ProjectName   string                  `json:"projectName"`
	ClientName    string                  `json:"clientName"`
	Description   string                  `json:"description"`
	Status        string                  `json:"status"`
	StartDate     *time.Time              `json:"startDate"`
	Deadline      *time.Time              `json:"deadline"`
	Comments      []models.ProjectComment `json:"comments"`
	WorkspaceName string                  `json:"workspaceName"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func newPublicProject(p *models.Project, ws *models.Workspace) PublicProject {
	comments := p.Comments
	if comments == nil {
		comments = []models.ProjectComment{}
	}
	return PublicProject{
		NumberOrder:   p.NumberOrder,
		ProjectName:   p.ProjectName,
		ClientName:    p.ClientName,
		Description:   p.Description,
		Status:        p.Status,
		StartDate:     p.StartDate,
		Deadline:      p.Deadline,
		Comments:      comments,
		WorkspaceName: ws.Name,
		UpdatedAt:     p.UpdatedAt,
	}
}

////////////////////////////////////////////////////////
// INVOICE / PORTFOLIO (cached)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetInvoice(c *gin.Context) {
	ref := invoicedomain.NormalizeNumber(c.Param("id"))

	h.serveCached(c, "invoice", cache.InvoiceKey(ref), "Invoice loaded",
		func(ctx context.Context) (any, []string, error) {
			inv, err := h.invoice.Execute(ctx, ref)
			if err != nil {
				return nil, nil, err
			}
			return inv, []string{
				cache.InvoiceKey(strconv.FormatUint(uint64(inv.ID), 10)),
				cache.InvoiceKey(inv.InvoiceNumber),
			}, nil
		})
}

func (h *PublicHandler) GetPortfolio(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	h.serveCached(c, "portfolio", cache.PortfolioKey(slug), "Portfolio loaded",
		func(ctx context.Context) (any, []string, error) {
			p, err := h.portfolio.Execute(ctx, slug)
			if err != nil {
				return nil, nil, err
			}
			return p, []string{cache.PortfolioKey(p.Slug)}, nil
		})
}

// serveCached stores the whole success envelope so hits are written as-is.
// load reports the keys writers invalidate; a response is only stored when
// key is one of them, otherwise nothing would ever evict it.
func (h *PublicHandler) serveCached(
	c *gin.Context,
	page, key, message string,
	load func(ctx context.Context) (any, []string, error),
) {
	ctx := c.Request.Context()

	if body, ok := h.cache.Get(ctx, key); ok {
		h.metrics.CacheLookup(page, true)
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	h.metrics.CacheLookup(page, false)

	data, canonical, err := load(ctx)
	if err != nil {
		httperr.Respond(c, err, "Failed to load "+page)
		return
	}

	body, err := json.Marshal(httpresp.Envelope{Success: true, Message: message, Data: data})
	if err != nil {
		httperr.Respond(c, err, "Failed to load "+page)
		return
	}

	if slices.Contains(canonical, key) {
		h.cache.Set(ctx, key, body)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

////////////////////////////////////////////////////////
// PROJECT STATUS PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetProject(c *gin.Context) {
	ws, project, ok := h.findProject(c)
	if !ok {
		return
	}
	httpresp.OK(c, "Project loaded", newPublicProject(project, ws))
}

func (h *PublicHandler) AddProjectComment(c *gin.Context) {
	_, project, ok := h.findProject(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := appendComment(c.Request.Context(), h.db, project, req, true, h.now())
	if err != nil {
		httperr.Respond(c, err, "Failed to add comment")
		return
	}
	httpresp.Created(c, "Comment added", comment)
}

func (h *PublicHandler) findProject(c *gin.Context) (*models.Workspace, *models.Project, bool) {
	ctx := c.Request.Context()
	slug := strings.ToLower(strings.TrimSpace(c.Param("workspaceSlug")))

	var ws models.Workspace
	err := h.db.WithContext(ctx).Where("slug = ?", slug).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "workspace_not_found", "Workspace not found")
		return nil, nil, false
	}
	if err != nil {
		httperr.Respond(c, err, "Failed to load project")
		return nil, nil, false
	}

	var project models.Project
	err = h.db.WithContext(ctx).
		Where("workspace_id = ? AND number_order = ?", ws.ID, strings.TrimSpace(c.Param("numberOrder"))).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "project_not_found", "Project not found")
		return nil, nil, false
	}
	if err != nil {
		httperr.Respond(c, err, "Failed to load project")
		return nil, nil, false
	}

	return &ws, &project, true
}
