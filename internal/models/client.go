package models

import "time"

type Client struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	WorkspaceID uint   `gorm:"uniqueIndex:idx_clients_workspace_client;not null" json:"workspaceId"`
	ClientID    string `gorm:"size:40;uniqueIndex:idx_clients_workspace_client;not null" json:"clientId"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:160" json:"email"`
	Phone   string `gorm:"size:40" json:"phone"`
	Company string `gorm:"size:160" json:"company"`
	Address string `gorm:"size:255" json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
