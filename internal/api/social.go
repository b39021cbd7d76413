package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/telemetry"
)

// SocialHandlers serves follow, block and discovery endpoints
type SocialHandlers struct {
	social *service.SocialGraph
}

// NewSocialHandlers creates the social graph handler set
func NewSocialHandlers(social *service.SocialGraph) *SocialHandlers {
	return &SocialHandlers{social: social}
}

// Follow handles POST /api/users/:username/follow
func (h *SocialHandlers) Follow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.follow")
	defer span.End()

	callerID, _ := auth.Caller(c)
	count, err := h.social.Follow(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"is_following": true, "followers_count": count})
}

// Unfollow handles DELETE /api/users/:username/follow
func (h *SocialHandlers) Unfollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.unfollow")
	defer span.End()

	callerID, _ := auth.Caller(c)
	count, err := h.social.Unfollow(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_following": false, "followers_count": count})
}

// ToggleFollow handles POST /api/users/:username/toggle-follow
func (h *SocialHandlers) ToggleFollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.toggle_follow")
	defer span.End()

	callerID, _ := auth.Caller(c)
	state, err := h.social.ToggleFollow(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Block handles POST /api/users/:username/block
func (h *SocialHandlers) Block(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.block")
	defer span.End()

	callerID, _ := auth.Caller(c)
	if err := h.social.Block(ctx, callerID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"is_blocked": true})
}

// Unblock handles DELETE /api/users/:username/block
func (h *SocialHandlers) Unblock(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.unblock")
	defer span.End()

	callerID, _ := auth.Caller(c)
	if err := h.social.Unblock(ctx, callerID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_blocked": false})
}

// Followers handles GET /api/users/:username/followers
func (h *SocialHandlers) Followers(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.followers")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	entries, pageInfo, err := h.social.Followers(ctx, callerID, c.Param("username"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": entries, "pagination": pageInfo})
}

// Following handles GET /api/users/:username/following
func (h *SocialHandlers) Following(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.following")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	entries, pageInfo, err := h.social.Following(ctx, callerID, c.Param("username"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": entries, "pagination": pageInfo})
}

// MutualFollowers handles GET /api/users/:username/mutual-followers
func (h *SocialHandlers) MutualFollowers(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.mutual_followers")
	defer span.End()

	callerID, _ := auth.Caller(c)
	mutual, err := h.social.MutualFollowers(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mutual_followers": mutual, "count": len(mutual)})
}

// Suggested handles GET /api/users/suggested
func (h *SocialHandlers) Suggested(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "social.suggested")
	defer span.End()

	callerID, _ := auth.Caller(c)
	_, limit := pagingParams(c)
	suggestions, err := h.social.SuggestedAccounts(ctx, callerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggested_users": suggestions})
}
