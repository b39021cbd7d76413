package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

// Router sets up API routes
type Router struct {
	accounts  *AccountHandlers
	social    *SocialHandlers
	posts     *PostHandlers
	messaging *MessagingHandlers
	tokens    *auth.TokenService
	logger    *zap.Logger
}

// Services bundles the service layer behind the router
type Services struct {
	Accounts  *service.Accounts
	Social    *service.SocialGraph
	Content   *service.Content
	Messaging *service.Messaging
	Activity  *service.Activity
}

// NewRouter creates a new API router
func NewRouter(services Services, tokens *auth.TokenService) *Router {
	return &Router{
		accounts:  NewAccountHandlers(services.Accounts, services.Activity),
		social:    NewSocialHandlers(services.Social),
		posts:     NewPostHandlers(services.Content),
		messaging: NewMessagingHandlers(services.Messaging),
		tokens:    tokens,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestIDMiddleware(), RequestLogger())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	required := auth.RequireAuth(r.tokens)
	optional := auth.OptionalAuth(r.tokens)

	users := engine.Group("/api/users")
	{
		users.POST("/register", r.accounts.Register)
		users.POST("/login", r.accounts.Login)
		users.POST("/logout", required, r.accounts.Logout)

		users.GET("/profile", required, r.accounts.OwnProfile)
		users.PUT("/profile", required, r.accounts.UpdateProfile)
		users.GET("/search", optional, r.accounts.Search)
		users.GET("/suggested", required, r.social.Suggested)
		users.GET("/activity", required, r.accounts.Activity)

		users.GET("/:username/profile", optional, r.accounts.Profile)
		users.POST("/:username/follow", required, r.social.Follow)
		users.DELETE("/:username/follow", required, r.social.Unfollow)
		users.POST("/:username/toggle-follow", required, r.social.ToggleFollow)
		users.POST("/:username/block", required, r.social.Block)
		users.DELETE("/:username/block", required, r.social.Unblock)
		users.GET("/:username/followers", optional, r.social.Followers)
		users.GET("/:username/following", optional, r.social.Following)
		users.GET("/:username/mutual-followers", required, r.social.MutualFollowers)

		users.GET("/:username/posts", optional, r.posts.UserPosts())
		users.GET("/:username/replies", optional, r.posts.UserReplies())
		users.GET("/:username/media", optional, r.posts.UserMedia())
		users.GET("/:username/liked", optional, r.posts.UserLiked())
	}

	posts := engine.Group("/api/posts")
	{
		posts.GET("", optional, r.posts.Timeline)
		posts.POST("", required, r.posts.Create)
		posts.GET("/saved", required, r.posts.Saved)
		posts.GET("/:id", optional, r.posts.Get)
		posts.GET("/:id/replies", optional, r.posts.Replies)
		posts.POST("/:id/like", required, r.posts.ToggleLike)
		posts.POST("/:id/save", required, r.posts.ToggleSave)
	}

	messages := engine.Group("/api/messages", required)
	{
		messages.GET("/conversations", r.messaging.List)
		messages.POST("/conversations/:username", r.messaging.Start)
		messages.GET("/:id", r.messaging.Messages)
		messages.POST("/:id", r.messaging.Send)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "thinkverse-api",
	})
}
