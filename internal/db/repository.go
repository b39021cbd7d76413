package db

import (
	"errors"

	"gorm.io/gorm"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// isDuplicate reports whether err is a unique-constraint violation.
// Requires TranslateError on the gorm config.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isNotFound reports whether err is a record-not-found result.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
