package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/identifier"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Deliverables string   `json:"deliverables"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	Active       *bool    `json:"active"`
}

type UpdateServiceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Deliverables *string  `json:"deliverables,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ?", workspaceID(c))

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := likePattern(search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(service_id) LIKE ?",
			like, like, like,
		)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		httperr.Respond(c, err, "Failed to list services")
		return
	}

	httpresp.List(c, "Services loaded", services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Service name is required")
		return
	}

	ctx := c.Request.Context()
	wsID := workspaceID(c)

	serviceID, err := identifier.Unique(ctx, identifier.DefaultAttempts,
		identifier.Prefixed("SRV", externalIDDigits),
		externalIDExists(h.db, &models.Service{}, wsID, "service_id"),
	)
	if err != nil {
		httperr.Respond(c, err, "Failed to generate service id")
		return
	}

	service := models.Service{
		WorkspaceID:  wsID,
		ServiceID:    serviceID,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Deliverables: strings.TrimSpace(req.Deliverables),
		Active:       true,
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(ctx).Create(&service).Error; err != nil {
		httperr.Respond(c, err, "Failed to create service")
		return
	}

	httpresp.Created(c, "Service created", service)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, "Service loaded", service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Service name is required")
			return
		}
		service.Name = name
	}
	if v := trimPtr(req.Description); v != nil {
		service.Description = *v
	}
	if v := trimPtr(req.Deliverables); v != nil {
		service.Deliverables = *v
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.Respond(c, err, "Failed to update service")
		return
	}

	httpresp.OK(c, "Service updated", service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND service_id = ?", workspaceID(c), c.Param("id")).
		Delete(&models.Service{})
	if res.Error != nil {
		httperr.Respond(c, res.Error, "Failed to delete service")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}

	httpresp.OK(c, "Service deleted", nil)
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	var service models.Service
	err := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND service_id = ?", workspaceID(c), c.Param("id")).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err, "Failed to load service")
		return nil, false
	}
	return &service, true
}
