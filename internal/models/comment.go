package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a comment on a post. ReplyToID points at the parent comment for
// replies and is nil for root comments. The reply graph is capped at two
// levels: a reply may only target a root comment, never another reply. That
// invariant is enforced transactionally on every write (see repository).
type Comment struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	PostID    uint  `gorm:"not null;index" json:"post_id"`
	Post      *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	UserID    *uint `gorm:"index" json:"user_id,omitempty"`
	User      *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Title     string `gorm:"not null;size:30" json:"title"`
	Caption   string `gorm:"not null" json:"caption"`
	ReplyToID *uint  `gorm:"index" json:"reply_to,omitempty"`
	// Replies holds the direct replies; populated on detail and thread views
	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int            `gorm:"-" json:"reply_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a reply rather than a root comment.
func (c *Comment) IsReply() bool {
	return c.ReplyToID != nil
}

// OwnedBy reports whether the comment was authored by the given user.
func (c *Comment) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID && userID != 0
}
