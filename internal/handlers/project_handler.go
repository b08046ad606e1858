package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/domain/dashboard"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/identifier"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type ProjectHandler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewProjectHandler(db *gorm.DB, loc *time.Location) *ProjectHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ProjectHandler{db: db, loc: loc, now: time.Now}
}

// --------- Requests ---------

type ProjectRequest struct {
	ProjectName *string  `json:"projectName"`
	ClientID    *string  `json:"clientId"`
	ClientName  *string  `json:"clientName"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	TotalPrice  *float64 `json:"totalPrice" binding:"omitempty,min=0"`
	StartDate   *string  `json:"startDate"`
	Deadline    *string  `json:"deadline"`
}

type CommentRequest struct {
	Content      string `json:"content" binding:"required"`
	AuthorName   string `json:"authorName" binding:"required"`
	AuthorEmail  string `json:"authorEmail" binding:"required"`
	AuthorAvatar string `json:"authorAvatar"`
}

// --------- Handlers ---------

func (h *ProjectHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ?", workspaceID(c))

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !models.IsProjectStatus(status) {
			invalidProjectStatus(c)
			return
		}
		q = q.Where("status = ?", status)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := likePattern(search)
		q = q.Where(
			"LOWER(project_name) LIKE ? OR LOWER(client_name) LIKE ? OR LOWER(number_order) LIKE ?",
			like, like, like,
		)
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		httperr.Respond(c, err, "Failed to list projects")
		return
	}

	httpresp.List(c, "Projects loaded", projects)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	wsID := workspaceID(c)

	project := models.Project{
		WorkspaceID: wsID,
		Status:      "pending",
	}
	if !h.apply(c, &project, req) {
		return
	}
	if project.ProjectName == "" {
		httperr.BadRequest(c, "project_name_required", "Project name is required")
		return
	}

	numberOrder, err := identifier.Unique(ctx, identifier.DefaultAttempts,
		identifier.Prefixed("PRJ", externalIDDigits),
		externalIDExists(h.db, &models.Project{}, wsID, "number_order"),
	)
	if err != nil {
		httperr.Respond(c, err, "Failed to generate project number")
		return
	}
	project.NumberOrder = numberOrder

	if err := h.db.WithContext(ctx).Create(&project).Error; err != nil {
		httperr.Respond(c, err, "Failed to create project")
		return
	}

	httpresp.Created(c, "Project created", project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, "Project loaded", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.find(c)
	if !ok {
		return
	}

	var req ProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.apply(c, project, req) {
		return
	}
	if project.ProjectName == "" {
		httperr.BadRequest(c, "project_name_required", "Project name is required")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(project).Error; err != nil {
		httperr.Respond(c, err, "Failed to update project")
		return
	}

	httpresp.OK(c, "Project updated", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND number_order = ?", workspaceID(c), c.Param("id")).
		Delete(&models.Project{})
	if res.Error != nil {
		httperr.Respond(c, res.Error, "Failed to delete project")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "project_not_found", "Project not found")
		return
	}

	httpresp.OK(c, "Project deleted", nil)
}

func (h *ProjectHandler) AddComment(c *gin.Context) {
	project, ok := h.find(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := appendComment(c.Request.Context(), h.db, project, req, false, h.now())
	if err != nil {
		httperr.Respond(c, err, "Failed to add comment")
		return
	}

	httpresp.Created(c, "Comment added", comment)
}

// ======================================================
// DASHBOARD
// ======================================================
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	var projects []models.Project
	if err := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ?", workspaceID(c)).
		Find(&projects).Error; err != nil {
		httperr.Respond(c, err, "Failed to load dashboard")
		return
	}

	httpresp.OK(c, "Dashboard loaded", dashboard.Compute(projects, h.now(), h.loc))
}

// apply copies the submitted fields onto p; absent fields stay untouched.
func (h *ProjectHandler) apply(c *gin.Context, p *models.Project, req ProjectRequest) bool {
	if v := trimPtr(req.ProjectName); v != nil {
		p.ProjectName = *v
	}
	if v := trimPtr(req.Description); v != nil {
		p.Description = *v
	}
	if req.TotalPrice != nil {
		p.TotalPrice = *req.TotalPrice
	}

	if v := trimPtr(req.Status); v != nil && *v != "" {
		if !models.IsProjectStatus(*v) {
			invalidProjectStatus(c)
			return false
		}
		p.Status = *v
	}

	if req.StartDate != nil {
		d, ok := parseOptionalDate(req.StartDate, h.loc)
		if !ok {
			httperr.BadRequest(c, "invalid_start_date", "Start date must be YYYY-MM-DD")
			return false
		}
		p.StartDate = d
	}
	if req.Deadline != nil {
		d, ok := parseOptionalDate(req.Deadline, h.loc)
		if !ok {
			httperr.BadRequest(c, "invalid_deadline", "Deadline must be YYYY-MM-DD")
			return false
		}
		p.Deadline = d
	}

	if v := trimPtr(req.ClientName); v != nil {
		p.ClientName = *v
	}
	if v := trimPtr(req.ClientID); v != nil {
		p.ClientID = *v
		if *v != "" {
			var client models.Client
			err := h.db.WithContext(c.Request.Context()).
				Where("workspace_id = ? AND client_id = ?", p.WorkspaceID, *v).
				First(&client).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.NotFound(c, "client_not_found", "Client not found")
				return false
			}
			if err != nil {
				httperr.Respond(c, err, "Failed to load client")
				return false
			}
			if req.ClientName == nil || p.ClientName == "" {
				p.ClientName = client.Name
			}
		}
	}

	if p.ClientName == "" {
		httperr.BadRequest(c, "client_name_required", "Client name is required")
		return false
	}
	return true
}

func (h *ProjectHandler) find(c *gin.Context) (*models.Project, bool) {
	var project models.Project
	err := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND number_order = ?", workspaceID(c), c.Param("id")).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "project_not_found", "Project not found")
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err, "Failed to load project")
		return nil, false
	}
	return &project, true
}

func invalidProjectStatus(c *gin.Context) {
	httperr.BadRequest(c, "invalid_status",
		"Status must be one of: "+strings.Join(models.ProjectStatuses, ", "))
}

// appendComment is shared by the team and client-facing routes. Comments are
// never edited, so the list only grows.
func appendComment(
	ctx context.Context,
	db *gorm.DB,
	p *models.Project,
	req CommentRequest,
	isClient bool,
	now time.Time,
) (*models.ProjectComment, error) {

	comment := models.ProjectComment{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		Content:      strings.TrimSpace(req.Content),
		AuthorName:   strings.TrimSpace(req.AuthorName),
		AuthorEmail:  strings.ToLower(strings.TrimSpace(req.AuthorEmail)),
		AuthorAvatar: strings.TrimSpace(req.AuthorAvatar),
		IsClient:     isClient,
		CreatedAt:    now,
	}
	if comment.Content == "" || comment.AuthorName == "" || comment.AuthorEmail == "" {
		return nil, httperr.ErrBadRequest("comment_incomplete", "Content, author name and author email are required")
	}

	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = now
	if err := db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
