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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ?", workspaceID(c))

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := likePattern(search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ? OR LOWER(client_id) LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Respond(c, err, "Failed to list clients")
		return
	}

	httpresp.List(c, "Clients loaded", clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Client name is required")
		return
	}

	ctx := c.Request.Context()
	wsID := workspaceID(c)

	clientID, err := identifier.Unique(ctx, identifier.DefaultAttempts,
		identifier.Prefixed("CL", externalIDDigits),
		externalIDExists(h.db, &models.Client{}, wsID, "client_id"),
	)
	if err != nil {
		httperr.Respond(c, err, "Failed to generate client id")
		return
	}

	client := models.Client{
		WorkspaceID: wsID,
		ClientID:    clientID,
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Company:     strings.TrimSpace(req.Company),
		Address:     strings.TrimSpace(req.Address),
		Notes:       strings.TrimSpace(req.Notes),
	}

	if err := h.db.WithContext(ctx).Create(&client).Error; err != nil {
		httperr.Respond(c, err, "Failed to create client")
		return
	}

	httpresp.Created(c, "Client created", client)
}

// ======================================================
// GET / UPDATE / DELETE (by clientId)
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, "Client loaded", client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Client name is required")
			return
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if v := trimPtr(req.Phone); v != nil {
		client.Phone = *v
	}
	if v := trimPtr(req.Company); v != nil {
		client.Company = *v
	}
	if v := trimPtr(req.Address); v != nil {
		client.Address = *v
	}
	if v := trimPtr(req.Notes); v != nil {
		client.Notes = *v
	}

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		httperr.Respond(c, err, "Failed to update client")
		return
	}

	httpresp.OK(c, "Client updated", client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND client_id = ?", workspaceID(c), c.Param("id")).
		Delete(&models.Client{})
	if res.Error != nil {
		httperr.Respond(c, res.Error, "Failed to delete client")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Client not found")
		return
	}

	httpresp.OK(c, "Client deleted", nil)
}

func (h *ClientHandler) find(c *gin.Context) (*models.Client, bool) {
	var client models.Client
	err := h.db.WithContext(c.Request.Context()).
		Where("workspace_id = ? AND client_id = ?", workspaceID(c), c.Param("id")).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "client_not_found", "Client not found")
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err, "Failed to load client")
		return nil, false
	}
	return &client, true
}
