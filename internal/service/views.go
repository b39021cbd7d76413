package service

import (
	"time"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

const defaultAvatar = "/default-avatar.png"

// AccountSummary is the denormalized author/participant block embedded in
// post, message and list views
type AccountSummary struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	IsVerified bool   `json:"is_verified"`
}

func summarize(a *models.Account) AccountSummary {
	avatar := a.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}
	return AccountSummary{
		ID:         a.ID,
		Username:   a.Username,
		FullName:   a.FullName,
		Avatar:     avatar,
		IsVerified: a.IsVerified,
	}
}

// ProfileView is the full profile payload. Counts are computed live.
type ProfileView struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email,omitempty"`
	FullName             string    `json:"full_name"`
	Bio                  string    `json:"bio"`
	Location             string    `json:"location"`
	Website              string    `json:"website"`
	Avatar               string    `json:"avatar"`
	DateJoined           time.Time `json:"date_joined"`
	LastActive           time.Time `json:"last_active"`
	IsVerified           bool      `json:"is_verified"`
	IsPrivate            bool      `json:"is_private"`
	FollowersCount       int64     `json:"followers_count"`
	FollowingCount       int64     `json:"following_count"`
	PostsCount           int64     `json:"posts_count"`
	RepliesCount         int64     `json:"replies_count"`
	LikesCount           int64     `json:"likes_count"`
	MediaCount           int64     `json:"media_count"`
	SavedCount           int64     `json:"saved_count"`
	IsFollowing          bool      `json:"is_following"`
	IsOwnProfile         bool      `json:"is_own_profile"`
	IsBlocked            bool      `json:"is_blocked"`
	MutualFollowersCount int       `json:"mutual_followers_count"`
}

// FollowListEntry is one row of a followers/following listing
type FollowListEntry struct {
	AccountSummary
	FollowersCount int64 `json:"followers_count"`
	IsFollowing    bool  `json:"is_following"`
}

// SuggestedAccount is one row of the follow-suggestion listing
type SuggestedAccount struct {
	AccountSummary
	Bio                  string `json:"bio"`
	FollowersCount       int64  `json:"followers_count"`
	MutualFollowersCount int    `json:"mutual_followers_count"`
}

// FollowState is the outcome of a follow mutation
type FollowState struct {
	IsFollowing    bool  `json:"is_following"`
	FollowersCount int64 `json:"followers_count"`
}

// PostView is a post annotated with derived counts and viewer-relative flags
type PostView struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Author       AccountSummary `json:"author"`
	CreatedAt    time.Time      `json:"created_at"`
	LikesCount   int64          `json:"likes_count"`
	RepliesCount int64          `json:"replies_count"`
	ImageURL     string         `json:"image_url"`
	MediaType    string         `json:"media_type"`
	Tags         []string       `json:"tags"`
	IsReply      bool           `json:"is_reply"`
	ParentPostID *int64         `json:"parent_post_id"`
	IsLiked      bool           `json:"is_liked"`
	IsSaved      bool           `json:"is_saved"`
	SavedAt      *time.Time     `json:"saved_at,omitempty"`
}

// LikeState is the outcome of a like toggle
type LikeState struct {
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

// SaveState is the outcome of a save toggle
type SaveState struct {
	IsSaved bool `json:"is_saved"`
}

// MessageView is a message with its sender summary
type MessageView struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	Sender    AccountSummary `json:"sender"`
	CreatedAt time.Time      `json:"created_at"`
	IsRead    bool           `json:"is_read"`
}

// LastMessageView is the conversation-list preview of the newest message
type LastMessageView struct {
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	SenderUsername string    `json:"sender_username"`
}

// ConversationView is one row of the conversation listing
type ConversationView struct {
	ID               int64            `json:"id"`
	OtherParticipant AccountSummary   `json:"other_participant"`
	LastMessage      *LastMessageView `json:"last_message"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ActivityView is one row of the activity listing
type ActivityView struct {
	ID        int64                  `json:"id"`
	Kind      string                 `json:"activity_type"`
	CreatedAt time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Page describes offset pagination of a listing
type Page struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	TotalCount  int64 `json:"total_count"`
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// clampPaging normalizes page/limit and returns the offset
func clampPaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return page, limit, (page - 1) * limit
}

func newPage(page, limit int, total int64) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return Page{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		TotalCount:  total,
	}
}
