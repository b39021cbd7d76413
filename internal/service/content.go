package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

const maxPostTitleLength = 200

// Content manages posts, replies and engagement toggles
type Content struct {
	accounts   AccountStore
	posts      PostStore
	engagement EngagementStore
	activity   *Activity
	logger     *zap.Logger
}

// NewContent creates the content service
func NewContent(accounts AccountStore, posts PostStore, engagement EngagementStore, activity *Activity) *Content {
	return &Content{
		accounts:   accounts,
		posts:      posts,
		engagement: engagement,
		activity:   activity,
		logger:     logging.GetLogger().With(zap.String("component", "content-service")),
	}
}

// CreatePostInput carries the fields of a post or reply submission
type CreatePostInput struct {
	Title     string
	Content   string
	Tags      []string
	ImageURL  string
	MediaType string
	ParentID  *int64
}

// CreatePost stores a new post or reply by the caller
func (s *Content) CreatePost(ctx context.Context, callerID int64, input CreatePostInput) (*PostView, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.Validation("content", "content is required")
	}
	if len(input.Title) > maxPostTitleLength {
		return nil, apperror.Validation("title",
			fmt.Sprintf("title must be at most %d characters", maxPostTitleLength))
	}

	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeNone
	}
	if !models.ValidMediaType(mediaType) {
		return nil, apperror.Validation("media_type",
			fmt.Sprintf("unknown media type: %s", mediaType))
	}

	now := time.Now().UTC()
	post := &models.Post{
		Title:     strings.TrimSpace(input.Title),
		Content:   content,
		AuthorID:  callerID,
		CreatedAt: now,
		UpdatedAt: now,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		MediaType: mediaType,
	}
	post.SetTagList(input.Tags)

	if input.ParentID != nil {
		parent, err := s.posts.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("looking up parent post: %w", err)
		}
		if parent == nil {
			return nil, apperror.NotFound("post", *input.ParentID)
		}
		post.IsReply = true
		post.ParentID.Int64 = parent.ID
		post.ParentID.Valid = true
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.activity.record(ctx, callerID, models.ActivityPostCreated,
		map[string]interface{}{"post_id": post.ID})

	views, err := s.buildPostViews(ctx, callerID, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetPost returns a single post annotated for the viewer
func (s *Content) GetPost(ctx context.Context, viewerID, postID int64) (*PostView, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildPostViews(ctx, viewerID, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Content) getPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("looking up post: %w", err)
	}
	if post == nil {
		return nil, apperror.NotFound("post", postID)
	}
	return post, nil
}

// Timeline returns top-level posts from all accounts, newest first
func (s *Content) Timeline(ctx context.Context, viewerID int64, page, limit int) ([]PostView, Page, error) {
	posts, err := s.posts.ListTimeline(ctx)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing timeline: %w", err)
	}
	return s.pagePostViews(ctx, viewerID, posts, page, limit)
}

// Replies returns the replies to a post, newest first
func (s *Content) Replies(ctx context.Context, viewerID, postID int64, page, limit int) ([]PostView, Page, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, Page{}, err
	}
	replies, err := s.posts.ListReplies(ctx, postID)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing replies: %w", err)
	}
	return s.pagePostViews(ctx, viewerID, replies, page, limit)
}

// ToggleLike flips the caller's like state for a post
func (s *Content) ToggleLike(ctx context.Context, callerID, postID int64) (LikeState, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return LikeState{}, err
	}

	liked, err := s.engagement.LikeExists(ctx, callerID, postID)
	if err != nil {
		return LikeState{}, fmt.Errorf("checking like: %w", err)
	}

	if liked {
		if _, err := s.engagement.DeleteLike(ctx, callerID, postID); err != nil {
			return LikeState{}, fmt.Errorf("deleting like: %w", err)
		}
	} else {
		if err := s.engagement.CreateLike(ctx, callerID, postID); err != nil && !isAlreadyExists(err) {
			return LikeState{}, fmt.Errorf("creating like: %w", err)
		}
		s.activity.record(ctx, callerID, models.ActivityPostLiked,
			map[string]interface{}{"post_id": postID})
	}

	count, err := s.engagement.CountLikes(ctx, postID)
	if err != nil {
		return LikeState{}, fmt.Errorf("counting likes: %w", err)
	}
	return LikeState{IsLiked: !liked, LikesCount: count}, nil
}

// ToggleSave flips the caller's saved state for a post. The create is
// attempted first; a duplicate means the post was already saved, and the
// existing row is removed instead.
func (s *Content) ToggleSave(ctx context.Context, callerID, postID int64) (SaveState, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return SaveState{}, err
	}

	saved := &models.SavedPost{
		AccountID: callerID,
		PostID:    postID,
		SavedAt:   time.Now().UTC(),
	}
	err := s.engagement.CreateSave(ctx, saved)
	if err == nil {
		s.activity.record(ctx, callerID, models.ActivityPostSaved,
			map[string]interface{}{"post_id": postID})
		return SaveState{IsSaved: true}, nil
	}
	if !isAlreadyExists(err) {
		return SaveState{}, fmt.Errorf("creating saved post: %w", err)
	}

	if _, err := s.engagement.DeleteSave(ctx, callerID, postID); err != nil {
		return SaveState{}, fmt.Errorf("deleting saved post: %w", err)
	}
	return SaveState{IsSaved: false}, nil
}

// SavedPosts returns the caller's saved posts, most recently saved first
func (s *Content) SavedPosts(ctx context.Context, callerID int64, page, limit int) ([]PostView, Page, error) {
	saved, err := s.engagement.ListSaved(ctx, callerID)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing saved posts: %w", err)
	}

	savedAt := make(map[int64]time.Time, len(saved))
	posts := make([]*models.Post, 0, len(saved))
	for _, row := range saved {
		post, err := s.posts.GetByID(ctx, row.PostID)
		if err != nil {
			return nil, Page{}, fmt.Errorf("looking up post: %w", err)
		}
		if post == nil {
			continue
		}
		savedAt[post.ID] = row.SavedAt
		posts = append(posts, post)
	}

	views, pageInfo, err := s.pagePostViews(ctx, callerID, posts, page, limit)
	if err != nil {
		return nil, Page{}, err
	}
	for i := range views {
		if at, ok := savedAt[views[i].ID]; ok {
			t := at
			views[i].SavedAt = &t
		}
	}
	return views, pageInfo, nil
}

// UserPosts returns the named account's top-level posts, newest first
func (s *Content) UserPosts(ctx context.Context, viewerID int64, username string, page, limit int) ([]PostView, Page, error) {
	return s.userPostList(ctx, viewerID, username, page, limit, func(ctx context.Context, authorID int64) ([]*models.Post, error) {
		return s.posts.ListByAuthor(ctx, authorID, false)
	})
}

// UserReplies returns the named account's replies, newest first
func (s *Content) UserReplies(ctx context.Context, viewerID int64, username string, page, limit int) ([]PostView, Page, error) {
	return s.userPostList(ctx, viewerID, username, page, limit, func(ctx context.Context, authorID int64) ([]*models.Post, error) {
		return s.posts.ListByAuthor(ctx, authorID, true)
	})
}

// UserMediaPosts returns the named account's posts carrying image, video
// or gif media, newest first
func (s *Content) UserMediaPosts(ctx context.Context, viewerID int64, username string, page, limit int) ([]PostView, Page, error) {
	return s.userPostList(ctx, viewerID, username, page, limit, s.posts.ListMediaByAuthor)
}

// UserLikedPosts returns the posts the named account has liked
func (s *Content) UserLikedPosts(ctx context.Context, viewerID int64, username string, page, limit int) ([]PostView, Page, error) {
	return s.userPostList(ctx, viewerID, username, page, limit, s.engagement.ListLikedPosts)
}

func (s *Content) userPostList(ctx context.Context, viewerID int64, username string, page, limit int,
	list func(context.Context, int64) ([]*models.Post, error)) ([]PostView, Page, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, Page{}, fmt.Errorf("looking up account: %w", err)
	}
	if account == nil {
		return nil, Page{}, apperror.NotFound("account", username)
	}

	posts, err := list(ctx, account.ID)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing posts: %w", err)
	}
	return s.pagePostViews(ctx, viewerID, posts, page, limit)
}

func (s *Content) pagePostViews(ctx context.Context, viewerID int64, posts []*models.Post, page, limit int) ([]PostView, Page, error) {
	page, limit, offset := clampPaging(page, limit)
	total := int64(len(posts))

	if offset >= len(posts) {
		posts = nil
	} else if offset+limit < len(posts) {
		posts = posts[offset : offset+limit]
	} else {
		posts = posts[offset:]
	}

	views, err := s.buildPostViews(ctx, viewerID, posts)
	if err != nil {
		return nil, Page{}, err
	}
	return views, newPage(page, limit, total), nil
}

// buildPostViews annotates posts with author summaries, live counts and
// viewer-relative flags. Authors are fetched in one batch.
func (s *Content) buildPostViews(ctx context.Context, viewerID int64, posts []*models.Post) ([]PostView, error) {
	authorIDs := make([]int64, 0, len(posts))
	seen := make(map[int64]bool, len(posts))
	for _, post := range posts {
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	accounts, err := s.accounts.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("loading authors: %w", err)
	}
	authors := make(map[int64]AccountSummary, len(accounts))
	for _, account := range accounts {
		authors[account.ID] = summarize(account)
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		view := PostView{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			Author:    authors[post.AuthorID],
			CreatedAt: post.CreatedAt,
			ImageURL:  ResolveImageURL(post.ID, post.ImageURL),
			MediaType: post.MediaType,
			Tags:      post.TagList(),
			IsReply:   post.IsReply,
		}
		if post.ParentID.Valid {
			parentID := post.ParentID.Int64
			view.ParentPostID = &parentID
		}

		if view.LikesCount, err = s.engagement.CountLikes(ctx, post.ID); err != nil {
			return nil, fmt.Errorf("counting likes: %w", err)
		}
		if view.RepliesCount, err = s.posts.CountReplies(ctx, post.ID); err != nil {
			return nil, fmt.Errorf("counting replies: %w", err)
		}

		if viewerID != 0 {
			if view.IsLiked, err = s.engagement.LikeExists(ctx, viewerID, post.ID); err != nil {
				return nil, fmt.Errorf("checking like: %w", err)
			}
			if view.IsSaved, err = s.engagement.SaveExists(ctx, viewerID, post.ID); err != nil {
				return nil, fmt.Errorf("checking saved: %w", err)
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// ResolveImageURL returns the stored image URL, or a deterministic
// placeholder derived from the post id when none was stored. The same
// post always resolves to the same placeholder.
func ResolveImageURL(postID int64, stored string) string {
	stored = strings.TrimSpace(stored)
	if stored != "" {
		return stored
	}
	return fmt.Sprintf("https://picsum.photos/seed/%d/600/300", postID)
}
