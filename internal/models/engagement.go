package models

import (
	"time"
)

// Like represents an account liking a post. At most one row per
// (account, post) pair, enforced by the composite unique index.
type Like struct {
	ID        int64 `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID int64 `gorm:"not null;uniqueIndex:likes_pair_ux;column:account_id"`
	PostID    int64 `gorm:"not null;uniqueIndex:likes_pair_ux;index:likes_post_ix;column:post_id"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	Post    *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "post_likes"
}

// SavedPost represents a bookmarked post. Created on save, deleted on
// unsave; at most one row per (account, post) pair.
type SavedPost struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID int64     `gorm:"not null;uniqueIndex:saved_posts_pair_ux;column:account_id"`
	PostID    int64     `gorm:"not null;uniqueIndex:saved_posts_pair_ux;column:post_id"`
	SavedAt   time.Time `gorm:"not null;index:saved_posts_saved_ix;column:saved_at"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	Post    *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for SavedPost
func (SavedPost) TableName() string {
	return "saved_posts"
}
