package models

import "time"

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	WorkspaceID uint   `gorm:"uniqueIndex:idx_services_workspace_service;not null" json:"workspaceId"`
	ServiceID   string `gorm:"size:40;uniqueIndex:idx_services_workspace_service;not null" json:"id"`

	Name         string  `gorm:"size:120;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	Deliverables string  `gorm:"type:text" json:"deliverables"`
	Price        float64 `json:"price"`
	Active       bool    `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
