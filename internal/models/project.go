package models

import "time"

const ProjectStatusDone = "done"

// ProjectStatuses is the closed set accepted on create/update.
var ProjectStatuses = []string{"pending", "in progress", "review", ProjectStatusDone}

type Project struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	WorkspaceID uint   `gorm:"uniqueIndex:idx_projects_workspace_number;not null" json:"workspaceId"`
	NumberOrder string `gorm:"size:40;uniqueIndex:idx_projects_workspace_number;not null" json:"numberOrder"`

	ProjectName string  `gorm:"size:160;not null" json:"projectName"`
	ClientID    string  `gorm:"size:40" json:"clientId"`
	ClientName  string  `gorm:"size:120;not null" json:"clientName"`
	Description string  `gorm:"type:text" json:"description"`
	Status      string  `gorm:"size:20;default:'pending'" json:"status"`
	TotalPrice  float64 `json:"totalPrice"`

	StartDate *time.Time `json:"startDate"`
	Deadline  *time.Time `json:"deadline"`

	LinkedInvoiceID *uint `gorm:"index" json:"linkedInvoiceId"`

	Comments []ProjectComment `gorm:"type:jsonb;serializer:json" json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProjectComment struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	AuthorEmail  string    `json:"authorEmail"`
	AuthorAvatar string    `json:"authorAvatar"`
	IsClient     bool      `json:"isClient"`
	CreatedAt    time.Time `json:"createdAt"`
}

func IsProjectStatus(s string) bool {
	for _, st := range ProjectStatuses {
		if st == s {
			return true
		}
	}
	return false
}
