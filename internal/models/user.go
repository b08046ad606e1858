package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"_id"`
	UserID   string `gorm:"size:20;uniqueIndex;not null" json:"userId"`
	FullName string `gorm:"size:120;not null" json:"fullName"`
	Email    string `gorm:"size:160;uniqueIndex;not null" json:"email"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Phone string `gorm:"size:40" json:"phone"`
	Bio   string `gorm:"type:text" json:"bio"`

	// Primary (active) workspace.
	WorkspaceID       *uint      `gorm:"index" json:"workspaceId"`
	WorkspaceRole     string     `gorm:"size:20" json:"workspaceRole"`
	WorkspaceJoinedAt *time.Time `json:"workspaceJoinedAt"`

	Workspaces []UserWorkspace `gorm:"type:jsonb;serializer:json" json:"workspaces"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserWorkspace is one membership entry as seen from the user side.
type UserWorkspace struct {
	Workspace uint      `json:"workspace"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

func (u *User) Membership(workspaceID uint) (UserWorkspace, bool) {
	for _, m := range u.Workspaces {
		if m.Workspace == workspaceID {
			return m, true
		}
	}
	return UserWorkspace{}, false
}
