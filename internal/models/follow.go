package models

import (
	"time"
)

// Follow represents a directed follow edge between two accounts.
// Uniqueness of the (follower, followed) pair is enforced by the composite
// index; concurrent creates resolve to a single edge at the storage layer.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FollowerID int64     `gorm:"not null;uniqueIndex:follows_pair_ux;index:follows_follower_created_ix,priority:1;column:follower_id"`
	FollowedID int64     `gorm:"not null;uniqueIndex:follows_pair_ux;index:follows_followed_created_ix,priority:1;column:followed_id"`
	CreatedAt  time.Time `gorm:"not null;index:follows_follower_created_ix,priority:2;index:follows_followed_created_ix,priority:2;column:created_at"`

	// Relationships
	Follower *Account `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE"`
	Followed *Account `gorm:"foreignKey:FollowedID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}

// Block represents a directed block edge between two accounts.
// A block in either direction suppresses new follows; existing follow edges
// are removed when the block is created, not retroactively afterwards.
type Block struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	BlockerID int64     `gorm:"not null;uniqueIndex:blocks_pair_ux;column:blocker_id"`
	BlockedID int64     `gorm:"not null;uniqueIndex:blocks_pair_ux;column:blocked_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Blocker *Account `gorm:"foreignKey:BlockerID;references:ID;constraint:OnDelete:CASCADE"`
	Blocked *Account `gorm:"foreignKey:BlockedID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Block
func (Block) TableName() string {
	return "blocked_accounts"
}
