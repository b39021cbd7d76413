package db

import (
	"context"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// EngagementRepository provides like and saved-post operations
type EngagementRepository struct {
	*Repository
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(repo *Repository) *EngagementRepository {
	return &EngagementRepository{Repository: repo}
}

// LikeExists reports whether accountID has liked postID
func (r *EngagementRepository) LikeExists(ctx context.Context, accountID, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Count(&count).Error
	return count > 0, err
}

// CreateLike inserts a like edge. The composite unique index guarantees a
// single row per (account, post) pair under concurrent toggles.
func (r *EngagementRepository) CreateLike(ctx context.Context, accountID, postID int64) error {
	like := &models.Like{AccountID: accountID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isDuplicate(err) {
			return apperror.AlreadyExists("post already liked")
		}
		return err
	}
	return nil
}

// DeleteLike removes a like edge, reporting whether one existed
func (r *EngagementRepository) DeleteLike(ctx context.Context, accountID, postID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountLikes counts likes on postID
func (r *EngagementRepository) CountLikes(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// CountLikedBy counts posts liked by accountID
func (r *EngagementRepository) CountLikedBy(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// ListLikedPosts returns posts liked by accountID, newest post first
func (r *EngagementRepository) ListLikedPosts(ctx context.Context, accountID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.account_id = ?", accountID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// SaveExists reports whether accountID has saved postID
func (r *EngagementRepository) SaveExists(ctx context.Context, accountID, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Count(&count).Error
	return count > 0, err
}

// CreateSave inserts a saved-post row
func (r *EngagementRepository) CreateSave(ctx context.Context, saved *models.SavedPost) error {
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		if isDuplicate(err) {
			return apperror.AlreadyExists("post already saved")
		}
		return err
	}
	return nil
}

// DeleteSave removes a saved-post row, reporting whether one existed
func (r *EngagementRepository) DeleteSave(ctx context.Context, accountID, postID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Delete(&models.SavedPost{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountSavedBy counts posts saved by accountID
func (r *EngagementRepository) CountSavedBy(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// ListSaved returns accountID's saved posts, most recently saved first
func (r *EngagementRepository) ListSaved(ctx context.Context, accountID int64) ([]*models.SavedPost, error) {
	var saved []*models.SavedPost
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("saved_at DESC").
		Find(&saved).Error
	return saved, err
}
