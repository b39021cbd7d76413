package models

import (
	"time"
)

// Activity kind constants
const (
	ActivityLogin          = "login"
	ActivityLogout         = "logout"
	ActivityPostCreated    = "post_created"
	ActivityPostLiked      = "post_liked"
	ActivityPostSaved      = "post_saved"
	ActivityUserFollowed   = "user_followed"
	ActivityProfileUpdated = "profile_updated"
)

// ValidActivityKind reports whether s is a known activity kind.
func ValidActivityKind(s string) bool {
	switch s {
	case ActivityLogin, ActivityLogout, ActivityPostCreated, ActivityPostLiked,
		ActivityPostSaved, ActivityUserFollowed, ActivityProfileUpdated:
		return true
	}
	return false
}

// Activity is an append-only record of a notable account action. It is an
// audit trail only and never feeds business-rule outcomes.
type Activity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AccountID int64     `gorm:"not null;index:activities_account_created_ix,priority:1;column:account_id"`
	Kind      string    `gorm:"type:varchar(20);not null;index:activities_kind_ix;column:kind"`
	CreatedAt time.Time `gorm:"not null;index:activities_account_created_ix,priority:2;column:created_at"`
	Data      string    `gorm:"type:jsonb;not null;default:'{}';column:data"`

	// Relationships
	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "account_activities"
}
