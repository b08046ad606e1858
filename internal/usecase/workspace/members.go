package workspace

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	domain "github.com/BruksfildServices01/freelance-desk/internal/domain/account"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

type MemberView struct {
	ID       uint            `json:"_id"`
	UserID   string          `json:"userId"`
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Role     permission.Role `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
	IsOwner  bool            `json:"isOwner"`
}

// ======================================================
// LIST
// ======================================================

type ListMembers struct {
	repo domain.Repository
}

func NewListMembers(repo domain.Repository) *ListMembers {
	return &ListMembers{repo: repo}
}

// Execute returns the owner first, then the members in join order.
func (uc *ListMembers) Execute(ctx context.Context, acc *Access) ([]MemberView, error) {
	ws := acc.Workspace

	ids := []uint{ws.OwnerID}
	for _, m := range ws.Members {
		if m.User != ws.OwnerID {
			ids = append(ids, m.User)
		}
	}

	users, err := uc.repo.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]int, len(users))
	for i, u := range users {
		byID[u.ID] = i
	}

	out := make([]MemberView, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		u := users[i]
		role, _ := domain.RoleOf(ws, id)
		view := MemberView{
			ID:       u.ID,
			UserID:   u.UserID,
			FullName: u.FullName,
			Email:    u.Email,
			Role:     role,
			IsOwner:  id == ws.OwnerID,
		}
		if m, ok := ws.Member(id); ok {
			view.JoinedAt = m.JoinedAt
		} else {
			view.JoinedAt = ws.CreatedAt
		}
		out = append(out, view)
	}
	return out, nil
}

// ======================================================
// ADD
// ======================================================

type AddMemberInput struct {
	Email string
	Role  string
}

type AddMember struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddMember(repo domain.Repository, audit *audit.Dispatcher) *AddMember {
	return &AddMember{repo: repo, audit: audit}
}

func (uc *AddMember) Execute(ctx context.Context, acc *Access, in AddMemberInput) (*MemberView, error) {
	if err := acc.requireOwner("add members"); err != nil {
		return nil, err
	}

	role, ok := domain.InviteRole(in.Role)
	if !ok {
		return nil, httperr.ErrBadRequest("invalid_role", "Role must be member or manager")
	}

	target, err := uc.repo.GetUserByEmail(ctx, auth.NormalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("user_not_found", "No registered user with this email")
	}
	if err != nil {
		return nil, err
	}

	ws := acc.Workspace
	if _, member := domain.RoleOf(ws, target.ID); member {
		return nil, httperr.ErrBadRequest("already_member", "User is already a member of this workspace")
	}

	now := time.Now()
	domain.AddWorkspaceMember(ws, target.ID, role, now, &acc.User.ID)
	domain.AddUserMembership(target, ws.ID, role, now)
	if target.WorkspaceID == nil {
		domain.SetPrimary(target, ws.ID, role, now)
	}

	if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveUser(ctx, target); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &acc.User.ID,
		Action:      "member_added",
		Entity:      "user",
		EntityID:    &target.ID,
		Metadata:    map[string]string{"role": string(role)},
	})

	return &MemberView{
		ID:       target.ID,
		UserID:   target.UserID,
		FullName: target.FullName,
		Email:    target.Email,
		Role:     role,
		JoinedAt: now,
	}, nil
}

// ======================================================
// UPDATE ROLE
// ======================================================

type UpdateMemberInput struct {
	MemberID uint
	Role     string
}

type UpdateMember struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateMember(repo domain.Repository, audit *audit.Dispatcher) *UpdateMember {
	return &UpdateMember{repo: repo, audit: audit}
}

func (uc *UpdateMember) Execute(ctx context.Context, acc *Access, in UpdateMemberInput) error {
	if err := acc.requireOwner("change member roles"); err != nil {
		return err
	}

	ws := acc.Workspace
	if in.MemberID == ws.OwnerID {
		return httperr.ErrBadRequest("owner_immutable", "The workspace owner's role cannot be changed")
	}

	role, ok := permission.ParseRole(in.Role)
	if !ok || !permission.IsEditable(role) {
		return httperr.ErrBadRequest("invalid_role", "Role must be member or manager")
	}

	if !domain.SetWorkspaceMemberRole(ws, in.MemberID, role) {
		return httperr.ErrNotFound("member_not_found", "Member not found in this workspace")
	}

	target, err := uc.repo.GetUserByID(ctx, in.MemberID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
		return err
	}
	if target != nil {
		domain.SetUserMembershipRole(target, ws.ID, role)
		if err := uc.repo.SaveUser(ctx, target); err != nil {
			return err
		}
	}

	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &acc.User.ID,
		Action:      "member_role_updated",
		Entity:      "user",
		EntityID:    &in.MemberID,
		Metadata:    map[string]string{"role": string(role)},
	})
	return nil
}

// ======================================================
// REMOVE
// ======================================================

type RemoveMember struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveMember(repo domain.Repository, audit *audit.Dispatcher) *RemoveMember {
	return &RemoveMember{repo: repo, audit: audit}
}

func (uc *RemoveMember) Execute(ctx context.Context, acc *Access, memberID uint) error {
	if err := acc.requireOwner("remove members"); err != nil {
		return err
	}

	ws := acc.Workspace
	if memberID == ws.OwnerID {
		return httperr.ErrBadRequest("owner_immutable", "The workspace owner cannot be removed")
	}

	if !domain.RemoveWorkspaceMember(ws, memberID) {
		return httperr.ErrNotFound("member_not_found", "Member not found in this workspace")
	}

	target, err := uc.repo.GetUserByID(ctx, memberID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := uc.repo.SaveWorkspace(ctx, ws); err != nil {
		return err
	}
	if target != nil {
		domain.RemoveUserMembership(target, ws.ID)
		if err := uc.repo.SaveUser(ctx, target); err != nil {
			return err
		}
	}

	uc.audit.Dispatch(ctx, audit.Event{
		WorkspaceID: ws.ID,
		UserID:      &acc.User.ID,
		Action:      "member_removed",
		Entity:      "user",
		EntityID:    &memberID,
	})
	return nil
}
