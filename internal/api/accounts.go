package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/telemetry"
)

// AccountHandlers serves registration, sessions, profiles and search
type AccountHandlers struct {
	accounts *service.Accounts
	activity *service.Activity
}

// NewAccountHandlers creates the account handler set
func NewAccountHandlers(accounts *service.Accounts, activity *service.Activity) *AccountHandlers {
	return &AccountHandlers{accounts: accounts, activity: activity}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register handles POST /api/users/register
func (h *AccountHandlers) Register(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.register")
	defer span.End()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}

	result, err := h.accounts.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login
func (h *AccountHandlers) Login(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.login")
	defer span.End()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}

	result, err := h.accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout handles POST /api/users/logout
func (h *AccountHandlers) Logout(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.logout")
	defer span.End()

	callerID, _ := auth.Caller(c)
	if err := h.accounts.Logout(ctx, callerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

// OwnProfile handles GET /api/users/profile
func (h *AccountHandlers) OwnProfile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.profile")
	defer span.End()

	callerID, _ := auth.Caller(c)
	view, err := h.accounts.Profile(ctx, callerID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Profile handles GET /api/users/:username/profile
func (h *AccountHandlers) Profile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.profile")
	defer span.End()

	callerID, _ := auth.Caller(c)
	view, err := h.accounts.Profile(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
	Avatar    *string `json:"avatar"`
	IsPrivate *bool   `json:"is_private"`
}

// UpdateProfile handles PUT /api/users/profile
func (h *AccountHandlers) UpdateProfile(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.update_profile")
	defer span.End()

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}

	callerID, _ := auth.Caller(c)
	view, err := h.accounts.UpdateProfile(ctx, callerID, service.UpdateProfileInput{
		FullName:  req.FullName,
		Bio:       req.Bio,
		Location:  req.Location,
		Website:   req.Website,
		Avatar:    req.Avatar,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Search handles GET /api/users/search?q=
func (h *AccountHandlers) Search(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.search")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	entries, pageInfo, err := h.accounts.Search(ctx, callerID, c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": entries, "pagination": pageInfo})
}

// Activity handles GET /api/users/activity
func (h *AccountHandlers) Activity(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "accounts.activity")
	defer span.End()

	callerID, _ := auth.Caller(c)
	page, limit := pagingParams(c)
	views, pageInfo, err := h.activity.List(ctx, callerID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": views, "pagination": pageInfo})
}
