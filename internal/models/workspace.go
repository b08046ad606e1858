package models

import (
	"time"

	"github.com/BruksfildServices01/freelance-desk/internal/permission"
)

type Workspace struct {
	ID     uint   `gorm:"primaryKey" json:"_id"`
	Name   string `gorm:"size:120;not null" json:"name"`
	Slug   string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Plan   string `gorm:"size:20;default:'free'" json:"plan"`
	Status string `gorm:"size:20;default:'active'" json:"status"`

	OwnerID uint `gorm:"index;not null" json:"owner"`

	Permissions permission.Set    `gorm:"type:jsonb;serializer:json" json:"permissions"`
	Members     []WorkspaceMember `gorm:"type:jsonb;serializer:json" json:"members"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkspaceMember struct {
	User      uint      `json:"user"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	InvitedBy *uint     `json:"invitedBy,omitempty"`
}

func (w *Workspace) Member(userID uint) (WorkspaceMember, bool) {
	for _, m := range w.Members {
		if m.User == userID {
			return m, true
		}
	}
	return WorkspaceMember{}, false
}
