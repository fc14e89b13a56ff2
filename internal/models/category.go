package models

import (
	"time"

	"gorm.io/gorm"
)

// Category labels posts. Categories have no owner and an independent
// lifecycle; deleting one never deletes the posts that carried it.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null;size:32;uniqueIndex" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
