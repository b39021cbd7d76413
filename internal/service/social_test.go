package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

func TestFollowStrict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")

	count, err := env.social.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Second strict follow of the same account is rejected
	_, err = env.social.Follow(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, apperror.ErrAlreadyExists))

	// The single edge survives
	exists, err := env.store.FollowExists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")

	_, err := env.social.Follow(ctx, alice.ID, "alice")
	assert.True(t, errors.Is(err, apperror.ErrInvalidOperation))

	_, err = env.social.ToggleFollow(ctx, alice.ID, "alice")
	assert.True(t, errors.Is(err, apperror.ErrInvalidOperation))
}

func TestFollowUnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	alice := env.account(t, "alice")

	_, err := env.social.Follow(context.Background(), alice.ID, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUnfollowStrict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	env.account(t, "bob")

	_, err := env.social.Unfollow(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = env.social.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)

	count, err := env.social.Unfollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestToggleFollowTwiceRestoresState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")

	state, err := env.social.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, int64(1), state.FollowersCount)

	state, err = env.social.ToggleFollow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)
	assert.Equal(t, int64(0), state.FollowersCount)

	exists, err := env.store.FollowExists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlockRemovesFollowsBothDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")

	_, err := env.social.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.social.Follow(ctx, bob.ID, "alice")
	require.NoError(t, err)

	require.NoError(t, env.social.Block(ctx, alice.ID, "bob"))

	followers, err := env.store.CountFollowers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), followers)
	followers, err = env.store.CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), followers)

	// Either side is forbidden from following while the block stands
	_, err = env.social.Follow(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	_, err = env.social.ToggleFollow(ctx, bob.ID, "alice")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestBlockDuplicateAndUnblock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	env.account(t, "bob")

	require.NoError(t, env.social.Block(ctx, alice.ID, "bob"))
	err := env.social.Block(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, apperror.ErrAlreadyExists))

	require.NoError(t, env.social.Unblock(ctx, alice.ID, "bob"))
	err = env.social.Unblock(ctx, alice.ID, "bob")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// Unblocked accounts can follow again
	_, err = env.social.Follow(ctx, alice.ID, "bob")
	assert.NoError(t, err)
}

func TestBlockSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.account(t, "alice")

	err := env.social.Block(context.Background(), alice.ID, "alice")
	assert.True(t, errors.Is(err, apperror.ErrInvalidOperation))
}

func TestMutualFollowersSymmetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")
	carol := env.account(t, "carol")
	dave := env.account(t, "dave")

	// alice and bob both follow carol; only alice follows dave
	for _, edge := range []struct{ follower, followed int64 }{
		{alice.ID, carol.ID}, {bob.ID, carol.ID}, {alice.ID, dave.ID},
	} {
		require.NoError(t, env.store.CreateFollow(ctx, &models.Follow{
			FollowerID: edge.follower, FollowedID: edge.followed, CreatedAt: time.Now().UTC(),
		}))
	}

	fromAlice, err := env.social.MutualFollowers(ctx, alice.ID, "bob")
	require.NoError(t, err)
	fromBob, err := env.social.MutualFollowers(ctx, bob.ID, "alice")
	require.NoError(t, err)

	require.Len(t, fromAlice, 1)
	assert.Equal(t, "carol", fromAlice[0].Username)
	assert.Equal(t, fromAlice, fromBob)
}

func TestSuggestedAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")
	carol := env.account(t, "carol")
	dave := env.account(t, "dave")

	// alice follows bob; bob follows carol and dave; alice already
	// follows dave, so only carol should be suggested
	for _, edge := range []struct{ follower, followed int64 }{
		{alice.ID, bob.ID}, {bob.ID, carol.ID}, {bob.ID, dave.ID}, {alice.ID, dave.ID},
	} {
		require.NoError(t, env.store.CreateFollow(ctx, &models.Follow{
			FollowerID: edge.follower, FollowedID: edge.followed, CreatedAt: time.Now().UTC(),
		}))
	}

	suggestions, err := env.social.SuggestedAccounts(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "carol", suggestions[0].Username)
	assert.Equal(t, int64(1), suggestions[0].FollowersCount)
}

func TestSuggestedAccountsEmptyGraph(t *testing.T) {
	env := newTestEnv(t)
	alice := env.account(t, "alice")

	suggestions, err := env.social.SuggestedAccounts(context.Background(), alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestFollowerListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")
	carol := env.account(t, "carol")

	_, err := env.social.Follow(ctx, bob.ID, "alice")
	require.NoError(t, err)
	_, err = env.social.Follow(ctx, carol.ID, "alice")
	require.NoError(t, err)
	_, err = env.social.Follow(ctx, alice.ID, "carol")
	require.NoError(t, err)

	followers, page, err := env.social.Followers(ctx, alice.ID, "alice", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	require.Len(t, followers, 2)
	// Most recent follower first, annotated relative to alice
	assert.Equal(t, "carol", followers[0].Username)
	assert.True(t, followers[0].IsFollowing)
	assert.Equal(t, "bob", followers[1].Username)
	assert.False(t, followers[1].IsFollowing)

	following, page, err := env.social.Following(ctx, bob.ID, "alice", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].Username)
}

func TestTruncateRuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// Multi-byte runes are never split
	got := truncate("héllo wörld", 4)
	assert.Equal(t, "héll...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestIntersectPreservesOrder(t *testing.T) {
	got := intersect([]int64{3, 1, 2, 2}, []int64{2, 3})
	assert.Equal(t, []int64{3, 2}, got)
	assert.Empty(t, intersect([]int64{1}, nil))
}
