package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

// ===============================
// Roles
// ===============================

// RoleOf resolves userID's role in ws. ok is false for outsiders.
func RoleOf(ws *models.Workspace, userID uint) (permission.Role, bool) {
	if ws.OwnerID == userID {
		return permission.RoleOwner, true
	}
	m, ok := ws.Member(userID)
	if !ok {
		return "", false
	}
	role, ok := permission.ParseRole(m.Role)
	if !ok || role == permission.RoleOwner {
		return permission.RoleMember, true
	}
	return role, true
}

// InviteRole applies the invitation rules: empty means member and owner
// is never granted through an invite.
func InviteRole(raw string) (permission.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(permission.RoleMember), string(permission.RoleOwner):
		return permission.RoleMember, true
	case string(permission.RoleManager):
		return permission.RoleManager, true
	}
	return "", false
}

// ===============================
// Membership entries
// ===============================

// AddWorkspaceMember appends userID unless already listed.
func AddWorkspaceMember(ws *models.Workspace, userID uint, role permission.Role, at time.Time, invitedBy *uint) bool {
	if _, ok := ws.Member(userID); ok {
		return false
	}
	ws.Members = append(ws.Members, models.WorkspaceMember{
		User:      userID,
		Role:      string(role),
		JoinedAt:  at,
		InvitedBy: invitedBy,
	})
	return true
}

// AddUserMembership appends workspaceID to the user's list unless present.
func AddUserMembership(u *models.User, workspaceID uint, role permission.Role, at time.Time) bool {
	if _, ok := u.Membership(workspaceID); ok {
		return false
	}
	u.Workspaces = append(u.Workspaces, models.UserWorkspace{
		Workspace: workspaceID,
		Role:      string(role),
		JoinedAt:  at,
	})
	return true
}

func SetWorkspaceMemberRole(ws *models.Workspace, userID uint, role permission.Role) bool {
	for i := range ws.Members {
		if ws.Members[i].User == userID {
			ws.Members[i].Role = string(role)
			return true
		}
	}
	return false
}

// SetUserMembershipRole updates the list entry and, when it is the active
// workspace, the primary role too.
func SetUserMembershipRole(u *models.User, workspaceID uint, role permission.Role) {
	for i := range u.Workspaces {
		if u.Workspaces[i].Workspace == workspaceID {
			u.Workspaces[i].Role = string(role)
		}
	}
	if u.WorkspaceID != nil && *u.WorkspaceID == workspaceID {
		u.WorkspaceRole = string(role)
	}
}

func RemoveWorkspaceMember(ws *models.Workspace, userID uint) bool {
	for i, m := range ws.Members {
		if m.User == userID {
			ws.Members = append(ws.Members[:i], ws.Members[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveUserMembership drops workspaceID from the user. If it was the
// primary workspace, the primary slot falls back to an owned workspace,
// then to the first remaining membership, else it is cleared.
func RemoveUserMembership(u *models.User, workspaceID uint) {
	kept := u.Workspaces[:0]
	for _, m := range u.Workspaces {
		if m.Workspace != workspaceID {
			kept = append(kept, m)
		}
	}
	u.Workspaces = kept

	if u.WorkspaceID == nil || *u.WorkspaceID != workspaceID {
		return
	}

	next, ok := fallbackMembership(u.Workspaces)
	if !ok {
		ClearPrimary(u)
		return
	}
	SetPrimary(u, next.Workspace, permission.Role(next.Role), next.JoinedAt)
}

func fallbackMembership(list []models.UserWorkspace) (models.UserWorkspace, bool) {
	for _, m := range list {
		if m.Role == string(permission.RoleOwner) {
			return m, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return models.UserWorkspace{}, false
}

func SetPrimary(u *models.User, workspaceID uint, role permission.Role, joinedAt time.Time) {
	id := workspaceID
	at := joinedAt
	u.WorkspaceID = &id
	u.WorkspaceRole = string(role)
	u.WorkspaceJoinedAt = &at
}

func ClearPrimary(u *models.User) {
	u.WorkspaceID = nil
	u.WorkspaceRole = ""
	u.WorkspaceJoinedAt = nil
}

// ===============================
// Workspace naming
// ===============================

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses everything else into single dashes.
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "workspace"
	}
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	return slug
}

func DefaultWorkspaceName(fullName string) string {
	return strings.TrimSpace(fullName) + "'s Workspace"
}
