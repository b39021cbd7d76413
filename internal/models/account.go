package models

import (
	"time"
)

// Account represents a registered user
type Account struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex:accounts_username_ux;column:username"`
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex:accounts_email_ux;column:email"`
	PasswordHash string `gorm:"type:varchar(128);not null;column:password_hash"`

	// Profile fields
	FullName string `gorm:"type:varchar(150);not null;default:'';column:full_name"`
	Bio      string `gorm:"type:varchar(500);not null;default:'';column:bio"`
	Location string `gorm:"type:varchar(100);not null;default:'';column:location"`
	Website  string `gorm:"type:varchar(200);not null;default:'';column:website"`
	Avatar   string `gorm:"type:varchar(200);not null;default:'';column:avatar"`

	// Flags
	IsVerified bool `gorm:"not null;default:false;column:is_verified"`
	IsPrivate  bool `gorm:"not null;default:false;column:is_private"`

	// Activity tracking
	DateJoined time.Time `gorm:"not null;column:date_joined"`
	LastActive time.Time `gorm:"not null;column:last_active"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
