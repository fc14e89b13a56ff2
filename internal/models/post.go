package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PostStatus is the publication state of a post, persisted as a small integer.
type PostStatus uint8

const (
	PostStatusDraft PostStatus = iota
	PostStatusArchived
	PostStatusPublished
)

// String returns the display name used in API payloads.
func (s PostStatus) String() string {
	switch s {
	case PostStatusDraft:
		return "draft"
	case PostStatusArchived:
		return "archived"
	case PostStatusPublished:
		return "published"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// ParsePostStatus converts a display name back into a status value.
func ParsePostStatus(v string) (PostStatus, error) {
	switch v {
	case "draft":
		return PostStatusDraft, nil
	case "archived":
		return PostStatusArchived, nil
	case "published":
		return PostStatusPublished, nil
	}
	return 0, fmt.Errorf("invalid post status %q", v)
}

// MarshalJSON serializes the status as its display name.
func (s PostStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the display name or the numeric value.
func (s *PostStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, perr := ParsePostStatus(name)
		if perr != nil {
			return perr
		}
		*s = parsed
		return nil
	}

	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid post status %s", data)
	}
	if n > uint8(PostStatusPublished) {
		return fmt.Errorf("invalid post status %d", n)
	}
	*s = PostStatus(n)
	return nil
}

// Post represents a blog post. The author reference is nulled when the author
// account is deleted; the post itself survives.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null;size:64" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Status      PostStatus `gorm:"not null;default:0" json:"status"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	Categories  []Category `gorm:"many2many:post_categories" json:"categories"`
	ImageURL    string     `json:"image_url,omitempty"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Likes lists the users who liked the post; populated on detail views only
	Likes []UserSummary `gorm:"-" json:"likes,omitempty"`
	// Comments holds the assembled thread (roots with one level of replies);
	// populated on detail views only
	Comments  []*Comment     `gorm:"-" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnedBy reports whether the post is owned by the given user.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID != nil && *p.UserID == userID && userID != 0
}
