package service

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/cache"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

const (
	defaultSuggestedLimit = 10
	suggestedCacheTTL     = time.Minute
)

// SocialGraph manages follow and block edges between accounts
type SocialGraph struct {
	accounts AccountStore
	social   SocialStore
	activity *Activity
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewSocialGraph creates the social graph service. The cache may be nil.
func NewSocialGraph(accounts AccountStore, social SocialStore, activity *Activity, redisCache *cache.Cache) *SocialGraph {
	return &SocialGraph{
		accounts: accounts,
		social:   social,
		activity: activity,
		cache:    redisCache,
		logger:   logging.GetLogger().With(zap.String("component", "social-graph-service")),
	}
}

func (s *SocialGraph) resolve(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if account == nil {
		return nil, apperror.NotFound("account", username)
	}
	return account, nil
}

// Follow creates a follow edge from the caller to the named account.
// Strict variant: a duplicate follow reports ErrAlreadyExists.
func (s *SocialGraph) Follow(ctx context.Context, callerID int64, username string) (int64, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return 0, err
	}
	if target.ID == callerID {
		return 0, apperror.InvalidOperation("cannot follow yourself")
	}

	blocked, err := s.social.BlockExistsBetween(ctx, callerID, target.ID)
	if err != nil {
		return 0, fmt.Errorf("checking blocks: %w", err)
	}
	if blocked {
		return 0, apperror.Forbidden("cannot follow a blocked account")
	}

	follow := &models.Follow{
		FollowerID: callerID,
		FollowedID: target.ID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.social.CreateFollow(ctx, follow); err != nil {
		return 0, err
	}

	s.activity.record(ctx, callerID, models.ActivityUserFollowed,
		map[string]interface{}{"followed_account_id": target.ID})

	return s.social.CountFollowers(ctx, target.ID)
}

// Unfollow removes the caller's follow edge to the named account.
// Strict variant: reports ErrNotFound when no edge exists.
func (s *SocialGraph) Unfollow(ctx context.Context, callerID int64, username string) (int64, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return 0, err
	}

	deleted, err := s.social.DeleteFollow(ctx, callerID, target.ID)
	if err != nil {
		return 0, fmt.Errorf("deleting follow: %w", err)
	}
	if !deleted {
		return 0, apperror.NotFound("follow", username)
	}

	return s.social.CountFollowers(ctx, target.ID)
}

// ToggleFollow flips the caller's follow state for the named account.
// Always succeeds when the edge mutation is legal, reporting the resulting
// state and the target's new follower count.
func (s *SocialGraph) ToggleFollow(ctx context.Context, callerID int64, username string) (FollowState, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return FollowState{}, err
	}
	if target.ID == callerID {
		return FollowState{}, apperror.InvalidOperation("cannot follow yourself")
	}

	following, err := s.social.FollowExists(ctx, callerID, target.ID)
	if err != nil {
		return FollowState{}, fmt.Errorf("checking follow: %w", err)
	}

	if following {
		if _, err := s.social.DeleteFollow(ctx, callerID, target.ID); err != nil {
			return FollowState{}, fmt.Errorf("deleting follow: %w", err)
		}
	} else {
		blocked, err := s.social.BlockExistsBetween(ctx, callerID, target.ID)
		if err != nil {
			return FollowState{}, fmt.Errorf("checking blocks: %w", err)
		}
		if blocked {
			return FollowState{}, apperror.Forbidden("cannot follow a blocked account")
		}

		follow := &models.Follow{
			FollowerID: callerID,
			FollowedID: target.ID,
			CreatedAt:  time.Now().UTC(),
		}
		// A concurrent toggle may have created the edge already; the
		// storage constraint guarantees a single row either way.
		if err := s.social.CreateFollow(ctx, follow); err != nil && !isAlreadyExists(err) {
			return FollowState{}, err
		}

		s.activity.record(ctx, callerID, models.ActivityUserFollowed,
			map[string]interface{}{"followed_account_id": target.ID})
	}

	count, err := s.social.CountFollowers(ctx, target.ID)
	if err != nil {
		return FollowState{}, fmt.Errorf("counting followers: %w", err)
	}
	return FollowState{IsFollowing: !following, FollowersCount: count}, nil
}

// Block creates a block edge from the caller to the named account. Any
// follow edges between the two are removed first, in both directions.
// Later follow-state changes are not re-checked against existing blocks;
// the suppression applies to new follows only.
func (s *SocialGraph) Block(ctx context.Context, callerID int64, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == callerID {
		return apperror.InvalidOperation("cannot block yourself")
	}

	if err := s.social.DeleteFollowsBetween(ctx, callerID, target.ID); err != nil {
		return fmt.Errorf("removing follow edges: %w", err)
	}

	block := &models.Block{
		BlockerID: callerID,
		BlockedID: target.ID,
		CreatedAt: time.Now().UTC(),
	}
	return s.social.CreateBlock(ctx, block)
}

// Unblock removes the caller's block edge to the named account
func (s *SocialGraph) Unblock(ctx context.Context, callerID int64, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	deleted, err := s.social.DeleteBlock(ctx, callerID, target.ID)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	if !deleted {
		return apperror.NotFound("block", username)
	}
	return nil
}

// MutualFollowers returns the accounts both the caller and the named
// account follow. The result is symmetric in its two arguments.
func (s *SocialGraph) MutualFollowers(ctx context.Context, callerID int64, username string) ([]AccountSummary, error) {
	other, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	ids, err := s.mutualIDs(ctx, callerID, other.ID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading mutual accounts: %w", err)
	}

	result := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, summarize(account))
	}
	return result, nil
}

func (s *SocialGraph) mutualIDs(ctx context.Context, a, b int64) ([]int64, error) {
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

// SuggestedAccounts recommends accounts followed by people the caller
// follows, excluding the caller and accounts already followed, ranked by
// the candidate's own last-activity recency. A simple distinct set; no
// weighting by number of mutual paths.
func (s *SocialGraph) SuggestedAccounts(ctx context.Context, callerID int64, limit int) ([]SuggestedAccount, error) {
	if limit < 1 {
		limit = defaultSuggestedLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	cacheKey := cache.HashKey("suggested_accounts", fmt.Sprintf("%d", callerID), fmt.Sprintf("%d", limit))
	if s.cache != nil {
		var cached []SuggestedAccount
		if err := s.cache.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	followingIDs, err := s.social.FollowingIDs(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("loading following set: %w", err)
	}

	candidateIDs, err := s.social.FollowedByAnyOf(ctx, followingIDs)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	excluded := make(map[int64]bool, len(followingIDs)+1)
	excluded[callerID] = true
	for _, id := range followingIDs {
		excluded[id] = true
	}

	filtered := candidateIDs[:0]
	for _, id := range candidateIDs {
		if !excluded[id] {
			filtered = append(filtered, id)
		}
	}

	accounts, err := s.accounts.GetByIDs(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("loading candidate accounts: %w", err)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].LastActive.After(accounts[j].LastActive)
	})
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}

	suggestions := make([]SuggestedAccount, 0, len(accounts))
	for _, account := range accounts {
		followerCount, err := s.social.CountFollowers(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("counting followers: %w", err)
		}
		mutual, err := s.mutualIDs(ctx, callerID, account.ID)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, SuggestedAccount{
			AccountSummary:       summarize(account),
			Bio:                  truncate(account.Bio, 100),
			FollowersCount:       followerCount,
			MutualFollowersCount: len(mutual),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, suggestions, suggestedCacheTTL); err != nil {
			s.logger.Debug("failed to cache suggestions", zap.Error(err))
		}
	}

	return suggestions, nil
}

// Followers lists accounts following the named account, most recent
// follower first, annotated relative to the caller.
func (s *SocialGraph) Followers(ctx context.Context, callerID int64, username string, page, limit int) ([]FollowListEntry, Page, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, Page{}, err
	}

	page, limit, offset := clampPaging(page, limit)
	accounts, total, err := s.social.FollowersOf(ctx, target.ID, limit, offset)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing followers: %w", err)
	}

	entries, err := s.followEntries(ctx, callerID, accounts)
	if err != nil {
		return nil, Page{}, err
	}
	return entries, newPage(page, limit, total), nil
}

// Following lists accounts the named account follows, most recent edge
// first, annotated relative to the caller.
func (s *SocialGraph) Following(ctx context.Context, callerID int64, username string, page, limit int) ([]FollowListEntry, Page, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, Page{}, err
	}

	page, limit, offset := clampPaging(page, limit)
	accounts, total, err := s.social.FollowingOf(ctx, target.ID, limit, offset)
	if err != nil {
		return nil, Page{}, fmt.Errorf("listing following: %w", err)
	}

	entries, err := s.followEntries(ctx, callerID, accounts)
	if err != nil {
		return nil, Page{}, err
	}
	return entries, newPage(page, limit, total), nil
}

func (s *SocialGraph) followEntries(ctx context.Context, callerID int64, accounts []*models.Account) ([]FollowListEntry, error) {
	entries := make([]FollowListEntry, 0, len(accounts))
	for _, account := range accounts {
		followerCount, err := s.social.CountFollowers(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("counting followers: %w", err)
		}
		isFollowing, err := s.social.FollowExists(ctx, callerID, account.ID)
		if err != nil {
			return nil, fmt.Errorf("checking follow: %w", err)
		}
		entries = append(entries, FollowListEntry{
			AccountSummary: summarize(account),
			FollowersCount: followerCount,
			IsFollowing:    isFollowing,
		})
	}
	return entries, nil
}

// intersect returns the values present in both slices, in a's order
func intersect(a, b []int64) []int64 {
	inB := make(map[int64]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	result := []int64{}
	for _, id := range a {
		if inB[id] {
			result = append(result, id)
			inB[id] = false
		}
	}
	return result
}

// truncate shortens s to at most max runes, never splitting a rune
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
