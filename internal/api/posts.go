package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/telemetry"
)

// PostHandlers serves posts, replies and engagement endpoints
type PostHandlers struct {
	content *service.Content
}

// NewPostHandlers creates the post handler set
func NewPostHandlers(content *service.Content) *PostHandlers {
	return &PostHandlers{content: content}
}

func postIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.Validation("id", "invalid post id")
	}
	return id, nil
}

type createPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"image_url"`
	MediaType string   `json:"media_type"`
	ParentID  *int64   `json:"parent_post_id"`
}

// Create handles POST /api/posts
func (h *PostHandlers) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.create")
	defer span.End()

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}

	callerID, _ := auth.Caller(c)
	view, err := h.content.CreatePost(ctx, callerID, service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		MediaType: req.MediaType,
		ParentID:  req.ParentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Timeline handles GET /api/posts
func (h *PostHandlers) Timeline(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.timeline")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	views, pageInfo, err := h.content.Timeline(ctx, callerID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views, "pagination": pageInfo})
}

// Get handles GET /api/posts/:id
func (h *PostHandlers) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.get")
	defer span.End()

	postID, err := postIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := auth.Caller(c)
	view, err := h.content.GetPost(ctx, callerID, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Replies handles GET /api/posts/:id/replies
func (h *PostHandlers) Replies(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.replies")
	defer span.End()

	postID, err := postIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	views, pageInfo, err := h.content.Replies(ctx, callerID, postID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": views, "pagination": pageInfo})
}

// ToggleLike handles POST /api/posts/:id/like
func (h *PostHandlers) ToggleLike(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.toggle_like")
	defer span.End()

	postID, err := postIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := auth.Caller(c)
	state, err := h.content.ToggleLike(ctx, callerID, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ToggleSave handles POST /api/posts/:id/save
func (h *PostHandlers) ToggleSave(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.toggle_save")
	defer span.End()

	postID, err := postIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := auth.Caller(c)
	state, err := h.content.ToggleSave(ctx, callerID, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Saved handles GET /api/posts/saved
func (h *PostHandlers) Saved(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.saved")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	views, pageInfo, err := h.content.SavedPosts(ctx, callerID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": views, "pagination": pageInfo})
}

// userList adapts the per-account post listings to a common handler shape
func (h *PostHandlers) userList(span string, list func(*gin.Context, int64, string, int, int) ([]service.PostView, service.Page, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, s := telemetry.StartSpan(c.Request.Context(), span)
		defer s.End()

		callerID, _ := auth.Caller(c)
		page, limit := pagingParams(c)
		views, pageInfo, err := list(c, callerID, c.Param("username"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": views, "pagination": pageInfo})
	}
}

// UserPosts handles GET /api/users/:username/posts
func (h *PostHandlers) UserPosts() gin.HandlerFunc {
	return h.userList("posts.user_posts", func(c *gin.Context, callerID int64, username string, page, limit int) ([]service.PostView, service.Page, error) {
		return h.content.UserPosts(c.Request.Context(), callerID, username, page, limit)
	})
}

// UserReplies handles GET /api/users/:username/replies
func (h *PostHandlers) UserReplies() gin.HandlerFunc {
	return h.userList("posts.user_replies", func(c *gin.Context, callerID int64, username string, page, limit int) ([]service.PostView, service.Page, error) {
		return h.content.UserReplies(c.Request.Context(), callerID, username, page, limit)
	})
}

// UserMedia handles GET /api/users/:username/media
func (h *PostHandlers) UserMedia() gin.HandlerFunc {
	return h.userList("posts.user_media", func(c *gin.Context, callerID int64, username string, page, limit int) ([]service.PostView, service.Page, error) {
		return h.content.UserMediaPosts(c.Request.Context(), callerID, username, page, limit)
	})
}

// UserLiked handles GET /api/users/:username/liked
func (h *PostHandlers) UserLiked() gin.HandlerFunc {
	return h.userList("posts.user_liked", func(c *gin.Context, callerID int64, username string, page, limit int) ([]service.PostView, service.Page, error) {
		return h.content.UserLikedPosts(c.Request.Context(), callerID, username, page, limit)
	})
}
