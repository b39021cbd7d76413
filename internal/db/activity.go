package db

import (
	"context"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// ActivityRepository provides append-only activity log operations.
// There is no update or delete path.
type ActivityRepository struct {
	*Repository
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(repo *Repository) *ActivityRepository {
	return &ActivityRepository{Repository: repo}
}

// Create appends an activity record
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListByAccount returns an account's activity, newest first, paginated
func (r *ActivityRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.Activity, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Activity{}).
		Where("account_id = ?", accountID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []*models.Activity
	if err := base.Order("created_at DESC").Limit(limit).Offset(offset).Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
