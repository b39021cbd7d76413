package db

import (
	"context"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// SocialRepository provides follow and block edge operations
type SocialRepository struct {
	*Repository
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(repo *Repository) *SocialRepository {
	return &SocialRepository{Repository: repo}
}

// FollowExists reports whether follower follows followed
func (r *SocialRepository) FollowExists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// CreateFollow inserts a follow edge. The composite unique index resolves
// concurrent creates to a single edge.
func (r *SocialRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isDuplicate(err) {
			return apperror.AlreadyExists("already following this account")
		}
		return err
	}
	return nil
}

// DeleteFollow removes the follow edge, reporting whether one existed
func (r *SocialRepository) DeleteFollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteFollowsBetween removes follow edges between two accounts in both directions
func (r *SocialRepository) DeleteFollowsBetween(ctx context.Context, a, b int64) error {
	return r.db.WithContext(ctx).
		Where("(follower_id = ? AND followed_id = ?) OR (follower_id = ? AND followed_id = ?)", a, b, b, a).
		Delete(&models.Follow{}).Error
}

// CountFollowers counts accounts following accountID
func (r *SocialRepository) CountFollowers(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// CountFollowing counts accounts accountID follows
func (r *SocialRepository) CountFollowing(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// FollowingIDs returns the IDs of accounts accountID follows
func (r *SocialRepository) FollowingIDs(ctx context.Context, accountID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", accountID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

// FollowersOf lists accounts following accountID, most recent edge first
func (r *SocialRepository) FollowersOf(ctx context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Account{}).
		Joins("JOIN follows ON follows.follower_id = accounts.id").
		Where("follows.followed_id = ?", accountID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []*models.Account
	if err := base.Order("follows.created_at DESC").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// FollowingOf lists accounts accountID follows, most recent edge first
func (r *SocialRepository) FollowingOf(ctx context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Account{}).
		Joins("JOIN follows ON follows.followed_id = accounts.id").
		Where("follows.follower_id = ?", accountID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []*models.Account
	if err := base.Order("follows.created_at DESC").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// FollowedByAnyOf returns the distinct IDs of accounts followed by any of followerIDs
func (r *SocialRepository) FollowedByAnyOf(ctx context.Context, followerIDs []int64) ([]int64, error) {
	if len(followerIDs) == 0 {
		return []int64{}, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id IN ?", followerIDs).
		Distinct().
		Pluck("followed_id", &ids).Error
	return ids, err
}

// BlockExists reports whether blocker has blocked blocked
func (r *SocialRepository) BlockExists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// BlockExistsBetween reports whether a block exists in either direction
func (r *SocialRepository) BlockExistsBetween(ctx context.Context, a, b int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// CreateBlock inserts a block edge
func (r *SocialRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if isDuplicate(err) {
			return apperror.AlreadyExists("account already blocked")
		}
		return err
	}
	return nil
}

// DeleteBlock removes a block edge, reporting whether one existed
func (r *SocialRepository) DeleteBlock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
