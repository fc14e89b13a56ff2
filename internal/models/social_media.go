package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialMedia is an admin-managed external link shown on the site. IconID
// selects one of the eleven built-in icons (0 through 10).
type SocialMedia struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null;size:64" json:"title"`
	Text      string         `json:"text"`
	Link      string         `gorm:"not null" json:"link"`
	Color     string         `gorm:"size:32" json:"color"`
	IconID    uint8          `gorm:"not null" json:"icon_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
