package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

const minPasswordLength = 8

// Accounts manages registration, authentication and profiles
type Accounts struct {
	accounts   AccountStore
	social     SocialStore
	posts      PostStore
	engagement EngagementStore
	activity   *Activity
	passwords  *auth.PasswordService
	tokens     *auth.TokenService
	logger     *zap.Logger
}

// NewAccounts creates the accounts service
func NewAccounts(accounts AccountStore, social SocialStore, posts PostStore,
	engagement EngagementStore, activity *Activity,
	passwords *auth.PasswordService, tokens *auth.TokenService) *Accounts {
	return &Accounts{
		accounts:   accounts,
		social:     social,
		posts:      posts,
		engagement: engagement,
		activity:   activity,
		passwords:  passwords,
		tokens:     tokens,
		logger:     logging.GetLogger().With(zap.String("component", "accounts-service")),
	}
}

// RegisterInput carries the fields of a registration request
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthResult is the outcome of registration or login
type AuthResult struct {
	Account AccountSummary `json:"user"`
	Token   string         `json:"token"`
}

// Register creates a new account and signs it in
func (s *Accounts) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if username == "" {
		return nil, apperror.Validation("username", "username is required")
	}
	if email == "" {
		return nil, apperror.Validation("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.Validation("email", "invalid email address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.Validation("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		DateJoined:   now,
		LastActive:   now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.activity.record(ctx, account.ID, models.ActivityLogin,
		map[string]interface{}{"registration": true})

	s.logger.Info("account registered",
		zap.Int64("account_id", account.ID),
		zap.String("username", account.Username))

	return &AuthResult{Account: summarize(account), Token: token}, nil
}

// Login authenticates by username or email plus password and issues a
// token
func (s *Accounts) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperror.Validation("username", "username and password are required")
	}

	account, err := s.accounts.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if account == nil && strings.Contains(identifier, "@") {
		account, err = s.accounts.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil {
			return nil, fmt.Errorf("looking up account: %w", err)
		}
	}
	if account == nil {
		// Same failure shape whether the account or the password is wrong
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	ok, err := s.passwords.Verify(account.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	account.LastActive = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		s.logger.Warn("failed to update last_active",
			zap.Int64("account_id", account.ID), zap.Error(err))
	}

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.activity.record(ctx, account.ID, models.ActivityLogin, nil)

	return &AuthResult{Account: summarize(account), Token: token}, nil
}

// Logout records the sign-out in the activity log. Tokens are stateless,
// so there is nothing to revoke server-side.
func (s *Accounts) Logout(ctx context.Context, callerID int64) error {
	return s.activity.Record(ctx, callerID, models.ActivityLogout, nil)
}

// Profile returns the named account's profile with live counts. An empty
// username resolves to the caller's own profile. Email and saved count are
// only present on the caller's own view.
func (s *Accounts) Profile(ctx context.Context, callerID int64, username string) (*ProfileView, error) {
	var account *models.Account
	var err error
	if username == "" {
		account, err = s.accounts.GetByID(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("looking up account: %w", err)
		}
		if account == nil {
			return nil, apperror.NotFound("account", fmt.Sprintf("%d", callerID))
		}
	} else {
		account, err = s.accounts.GetByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("looking up account: %w", err)
		}
		if account == nil {
			return nil, apperror.NotFound("account", username)
		}
	}

	view := &ProfileView{
		ID:           account.ID,
		Username:     account.Username,
		FullName:     account.FullName,
		Bio:          account.Bio,
		Location:     account.Location,
		Website:      account.Website,
		Avatar:       account.Avatar,
		DateJoined:   account.DateJoined,
		LastActive:   account.LastActive,
		IsVerified:   account.IsVerified,
		IsPrivate:    account.IsPrivate,
		IsOwnProfile: account.ID == callerID,
	}
	if view.Avatar == "" {
		view.Avatar = defaultAvatar
	}

	if view.FollowersCount, err = s.social.CountFollowers(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("counting followers: %w", err)
	}
	if view.FollowingCount, err = s.social.CountFollowing(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("counting following: %w", err)
	}
	if view.PostsCount, err = s.posts.CountByAuthor(ctx, account.ID, false); err != nil {
		return nil, fmt.Errorf("counting posts: %w", err)
	}
	if view.RepliesCount, err = s.posts.CountByAuthor(ctx, account.ID, true); err != nil {
		return nil, fmt.Errorf("counting replies: %w", err)
	}
	if view.LikesCount, err = s.engagement.CountLikedBy(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("counting likes: %w", err)
	}
	if view.MediaCount, err = s.posts.CountMediaByAuthor(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("counting media posts: %w", err)
	}

	if view.IsOwnProfile {
		view.Email = account.Email
		if view.SavedCount, err = s.engagement.CountSavedBy(ctx, account.ID); err != nil {
			return nil, fmt.Errorf("counting saved posts: %w", err)
		}
	} else if callerID != 0 {
		if view.IsFollowing, err = s.social.FollowExists(ctx, callerID, account.ID); err != nil {
			return nil, fmt.Errorf("checking follow: %w", err)
		}
		if view.IsBlocked, err = s.social.BlockExistsBetween(ctx, callerID, account.ID); err != nil {
			return nil, fmt.Errorf("checking blocks: %w", err)
		}
		mutual, err := s.mutualIDs(ctx, callerID, account.ID)
		if err != nil {
			return nil, err
		}
		view.MutualFollowersCount = len(mutual)
	}

	return view, nil
}

func (s *Accounts) mutualIDs(ctx context.Context, a, b int64) ([]int64, error) {
	aFollowing, err := s.social.FollowingIDs(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("loading following set: %w", err)
	}
	bFollowing, err := s.social.FollowingIDs(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("loading following set: %w", err)
	}
	return intersect(aFollowing, bFollowing), nil
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers
// leave the stored value unchanged.
type UpdateProfileInput struct {
	FullName  *string
	Bio       *string
	Location  *string
	Website   *string
	Avatar    *string
	IsPrivate *bool
}

// UpdateProfile applies a partial profile update to the caller's account
func (s *Accounts) UpdateProfile(ctx context.Context, callerID int64, input UpdateProfileInput) (*ProfileView, error) {
	account, err := s.accounts.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if account == nil {
		return nil, apperror.NotFound("account", fmt.Sprintf("%d", callerID))
	}

	if input.FullName != nil {
		account.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Bio != nil {
		account.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Location != nil {
		account.Location = strings.TrimSpace(*input.Location)
	}
	if input.Website != nil {
		account.Website = strings.TrimSpace(*input.Website)
	}
	if input.Avatar != nil {
		account.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.IsPrivate != nil {
		account.IsPrivate = *input.IsPrivate
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	s.activity.record(ctx, callerID, models.ActivityProfileUpdated, nil)

	return s.Profile(ctx, callerID, "")
}

// Search finds accounts matching the query on username, full name or bio.
// The caller is excluded from results.
func (s *Accounts) Search(ctx context.Context, callerID int64, query string, page, limit int) ([]FollowListEntry, Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, Page{}, apperror.Validation("q", "search query is required")
	}

	page, limit, offset := clampPaging(page, limit)
	accounts, total, err := s.accounts.Search(ctx, query, callerID, limit, offset)
	if err != nil {
		return nil, Page{}, fmt.Errorf("searching accounts: %w", err)
	}

	entries := make([]FollowListEntry, 0, len(accounts))
	for _, account := range accounts {
		followerCount, err := s.social.CountFollowers(ctx, account.ID)
		if err != nil {
			return nil, Page{}, fmt.Errorf("counting followers: %w", err)
		}
		isFollowing := false
		if callerID != 0 {
			if isFollowing, err = s.social.FollowExists(ctx, callerID, account.ID); err != nil {
				return nil, Page{}, fmt.Errorf("checking follow: %w", err)
			}
		}
		entries = append(entries, FollowListEntry{
			AccountSummary: summarize(account),
			FollowersCount: followerCount,
			IsFollowing:    isFollowing,
		})
	}
	return entries, newPage(page, limit, total), nil
}
