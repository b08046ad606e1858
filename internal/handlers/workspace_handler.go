package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/middleware"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/workspace"
)

// ======================================================
// HANDLER
// ======================================================

type WorkspaceHandler struct {
	rename            *workspace.Rename
	list              *workspace.List
	switchTo          *workspace.Switch
	listMembers       *workspace.ListMembers
	addMember         *workspace.AddMember
	updateMember      *workspace.UpdateMember
	removeMember      *workspace.RemoveMember
	getPermissions    *workspace.GetPermissions
	updatePermissions *workspace.UpdatePermissions

	cookieSecure bool
}

func NewWorkspaceHandler(
	repo domain.Repository,
	tokens *auth.TokenService,
	catalog *permission.Catalog,
	dispatcher *audit.Dispatcher,
	m *metrics.Metrics,
	cookieSecure bool,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		rename:            workspace.NewRename(repo, dispatcher),
		list:              workspace.NewList(repo),
		switchTo:          workspace.NewSwitch(repo, tokens, dispatcher, m),
		listMembers:       workspace.NewListMembers(repo),
		addMember:         workspace.NewAddMember(repo, dispatcher),
		updateMember:      workspace.NewUpdateMember(repo, dispatcher),
		removeMember:      workspace.NewRemoveMember(repo, dispatcher),
		getPermissions:    workspace.NewGetPermissions(catalog),
		updatePermissions: workspace.NewUpdatePermissions(repo, catalog, dispatcher),
		cookieSecure:      cookieSecure,
	}
}

// --------- Requests ---------

type RenameWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type SwitchWorkspaceRequest struct {
	WorkspaceID uint `json:"workspaceId" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

type UpdateMemberRequest struct {
	MemberID uint   `json:"memberId" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type RemoveMemberRequest struct {
	MemberID uint `json:"memberId"`
}

type UpdatePermissionsRequest struct {
	Permissions struct {
		Manager []string `json:"manager"`
		Member  []string `json:"member"`
	} `json:"permissions"`
}

// WorkspaceView is the active workspace plus the caller's role in it.
type WorkspaceView struct {
	Workspace *models.Workspace `json:"workspace"`
	Role      permission.Role   `json:"role"`
}

// --------- Workspace ---------

func (h *WorkspaceHandler) Get(c *gin.Context) {
	acc := middleware.Access(c)
	httpresp.OK(c, "Workspace loaded", WorkspaceView{Workspace: acc.Workspace, Role: acc.Role})
}

func (h *WorkspaceHandler) Rename(c *gin.Context) {
	var req RenameWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	acc := middleware.Access(c)
	ws, err := h.rename.Execute(c.Request.Context(), acc, req.Name)
	if err != nil {
		httperr.Respond(c, err, "Failed to update workspace")
		return
	}
	httpresp.OK(c, "Workspace updated", WorkspaceView{Workspace: ws, Role: acc.Role})
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "Failed to list workspaces")
		return
	}
	httpresp.List(c, "Workspaces loaded", items)
}

func (h *WorkspaceHandler) Switch(c *gin.Context) {
	var req SwitchWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.switchTo.Execute(c.Request.Context(), middleware.UserID(c), req.WorkspaceID)
	if err != nil {
		httperr.Respond(c, err, "Failed to switch workspace")
		return
	}

	setTokenCookie(c, res.Token, h.cookieSecure)
	httpresp.OK(c, "Workspace switched", res)
}

// --------- Members ---------

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	members, err := h.listMembers.Execute(c.Request.Context(), middleware.Access(c))
	if err != nil {
		httperr.Respond(c, err, "Failed to list members")
		return
	}
	httpresp.List(c, "Members loaded", members)
}

func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.addMember.Execute(c.Request.Context(), middleware.Access(c), workspace.AddMemberInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to add member")
		return
	}
	httpresp.Created(c, "Member added", member)
}

func (h *WorkspaceHandler) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.updateMember.Execute(c.Request.Context(), middleware.Access(c), workspace.UpdateMemberInput{
		MemberID: req.MemberID,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to update member")
		return
	}
	httpresp.OK(c, "Member updated", nil)
}

// RemoveMember takes the member from ?memberId= or, failing that, the body.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	var memberID uint
	if raw := c.Query("memberId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_member_id", "memberId must be a positive integer")
			return
		}
		memberID = uint(id)
	} else {
		var req RemoveMemberRequest
		if !bindJSON(c, &req) {
			return
		}
		memberID = req.MemberID
	}
	if memberID == 0 {
		httperr.BadRequest(c, "validation_error", "memberId is required")
		return
	}

	if err := h.removeMember.Execute(c.Request.Context(), middleware.Access(c), memberID); err != nil {
		httperr.Respond(c, err, "Failed to remove member")
		return
	}
	httpresp.OK(c, "Member removed", nil)
}

// --------- Permissions ---------

func (h *WorkspaceHandler) Permissions(c *gin.Context) {
	httpresp.OK(c, "Permissions loaded", h.getPermissions.Execute(c.Request.Context(), middleware.Access(c)))
}

func (h *WorkspaceHandler) UpdatePermissions(c *gin.Context) {
	var req UpdatePermissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.updatePermissions.Execute(c.Request.Context(), middleware.Access(c), workspace.UpdatePermissionsInput{
		Manager: req.Permissions.Manager,
		Member:  req.Permissions.Member,
	})
	if err != nil {
		httperr.Respond(c, err, "Failed to update permissions")
		return
	}
	httpresp.OK(c, "Permissions updated", view)
}
