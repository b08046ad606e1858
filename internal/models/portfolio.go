package models

import "time"

type Portfolio struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	WorkspaceID uint   `gorm:"uniqueIndex;not null" json:"workspaceId"`
	Slug        string `gorm:"size:80;uniqueIndex;not null" json:"slug"`

	DisplayName string `gorm:"size:120" json:"displayName"`
	Headline    string `gorm:"size:200" json:"headline"`
	Bio         string `gorm:"type:text" json:"bio"`
	Cover       string `gorm:"type:text" json:"cover"`
	IsPublished bool   `gorm:"not null" json:"isPublished"`

	Links   []PortfolioLink `gorm:"type:jsonb;serializer:json" json:"links"`
	Socials Socials         `gorm:"type:jsonb;serializer:json" json:"socials"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PortfolioLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// Socials is the fixed social-link key set of a portfolio.
type Socials struct {
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Dribbble  string `json:"dribbble"`
	Behance   string `json:"behance"`
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
	Website   string `json:"website"`
}
