package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Media type constants for Post.MediaType
const (
	MediaTypeNone  = "none"
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeGIF   = "gif"
)

// ValidMediaType reports whether s is a member of the media type enumeration.
func ValidMediaType(s string) bool {
	switch s {
	case MediaTypeNone, MediaTypeImage, MediaTypeVideo, MediaTypeGIF:
		return true
	}
	return false
}

// Post represents a top-level post or a reply. Replies are posts with
// IsReply set and a parent reference; deleting a parent cascades to the
// whole reply chain.
type Post struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Title     string        `gorm:"type:varchar(200);not null;default:'';column:title"`
	Content   string        `gorm:"type:text;not null;column:content"`
	AuthorID  int64         `gorm:"not null;index:posts_author_ix;column:author_id"`
	CreatedAt time.Time     `gorm:"not null;index:posts_created_ix;column:created_at"`
	UpdatedAt time.Time     `gorm:"not null;column:updated_at"`
	Tags      string        `gorm:"type:text;not null;default:'';column:tags"`
	ImageURL  string        `gorm:"type:varchar(500);not null;default:'';column:image_url"`
	MediaType string        `gorm:"type:varchar(20);not null;default:'none';column:media_type"`
	IsReply   bool          `gorm:"not null;default:false;column:is_reply"`
	ParentID  sql.NullInt64 `gorm:"index:posts_parent_ix;column:parent_post_id"`

	// Relationships
	Author  *Account `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Parent  *Post    `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
	Replies []Post   `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// TagList decodes the stored tag sequence. Malformed stored data decodes to
// an empty list rather than failing the read.
func (p *Post) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(p.Tags), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// SetTagList encodes the tag sequence for storage, preserving order and
// duplicates. An empty list stores as the empty string.
func (p *Post) SetTagList(tags []string) {
	if len(tags) == 0 {
		p.Tags = ""
		return
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		p.Tags = ""
		return
	}
	p.Tags = string(encoded)
}
