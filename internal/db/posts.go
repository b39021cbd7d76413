package db

import (
	"context"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ListTimeline returns all non-reply posts, newest first
func (r *PostRepository) ListTimeline(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("is_reply = ?", false).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListReplies returns replies to parentID, newest first
func (r *PostRepository) ListReplies(ctx context.Context, parentID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("parent_post_id = ? AND is_reply = ?", parentID, true).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListByAuthor returns posts or replies authored by authorID, newest first
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, isReply bool) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND is_reply = ?", authorID, isReply).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListMediaByAuthor returns authorID's posts carrying image, video or gif media
func (r *PostRepository) ListMediaByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND media_type IN ?", authorID,
			[]string{models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeGIF}).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// CountByAuthor counts posts or replies authored by authorID
func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64, isReply bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND is_reply = ?", authorID, isReply).
		Count(&count).Error
	return count, err
}

// CountMediaByAuthor counts authorID's posts carrying media
func (r *PostRepository) CountMediaByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND media_type IN ?", authorID,
			[]string{models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeGIF}).
		Count(&count).Error
	return count, err
}

// CountReplies counts replies to postID. Reply counts are always computed
// at read time, never stored.
func (r *PostRepository) CountReplies(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("parent_post_id = ? AND is_reply = ?", postID, true).
		Count(&count).Error
	return count, err
}
