package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
)

func TestStartConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")

	first, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", first.OtherParticipant.Username)
	assert.Nil(t, first.LastMessage)

	// One conversation per pair, found from either side
	again, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	fromBob, err := env.messaging.StartConversation(ctx, bob.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, fromBob.ID)
	assert.Equal(t, "alice", fromBob.OtherParticipant.Username)

	_, err = env.messaging.StartConversation(ctx, alice.ID, "alice")
	assert.True(t, errors.Is(err, apperror.ErrInvalidOperation))

	_, err = env.messaging.StartConversation(ctx, alice.ID, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSendMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	env.account(t, "bob")
	carol := env.account(t, "carol")

	conversation, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)

	view, err := env.messaging.SendMessage(ctx, alice.ID, conversation.ID, "  hi bob  ")
	require.NoError(t, err)
	assert.Equal(t, "hi bob", view.Content)
	assert.Equal(t, "alice", view.Sender.Username)

	_, err = env.messaging.SendMessage(ctx, alice.ID, conversation.ID, "   ")
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	// Outsiders cannot write into the conversation, and no message row
	// is created for the attempt
	_, err = env.messaging.SendMessage(ctx, carol.ID, conversation.ID, "let me in")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	messages, err := env.store.ListMessages(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	_, err = env.messaging.SendMessage(ctx, alice.ID, 9999, "hello?")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestMessagesMarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	bob := env.account(t, "bob")

	conversation, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.messaging.SendMessage(ctx, alice.ID, conversation.ID, "one")
	require.NoError(t, err)
	_, err = env.messaging.SendMessage(ctx, alice.ID, conversation.ID, "two")
	require.NoError(t, err)

	unread, err := env.store.UnreceiptedMessageIDs(ctx, conversation.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	// Listing marks everything from other senders as read
	views, err := env.messaging.Messages(ctx, bob.ID, conversation.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "one", views[0].Content)
	assert.Equal(t, "two", views[1].Content)

	unread, err = env.store.UnreceiptedMessageIDs(ctx, conversation.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	// Re-listing changes nothing
	_, err = env.messaging.Messages(ctx, bob.ID, conversation.ID)
	require.NoError(t, err)

	// The sender's own messages never count as unread for the sender
	unread, err = env.store.UnreceiptedMessageIDs(ctx, conversation.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMessagesForbiddenForOutsiders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	env.account(t, "bob")
	carol := env.account(t, "carol")

	conversation, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)

	_, err = env.messaging.Messages(ctx, carol.ID, conversation.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestConversationListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.account(t, "alice")
	env.account(t, "bob")
	env.account(t, "carol")

	withBob, err := env.messaging.StartConversation(ctx, alice.ID, "bob")
	require.NoError(t, err)
	withCarol, err := env.messaging.StartConversation(ctx, alice.ID, "carol")
	require.NoError(t, err)

	// Activity in the bob conversation bumps it to the top
	_, err = env.messaging.SendMessage(ctx, alice.ID, withBob.ID, "hello bob")
	require.NoError(t, err)

	views, err := env.messaging.Conversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, withBob.ID, views[0].ID)
	assert.Equal(t, "bob", views[0].OtherParticipant.Username)
	require.NotNil(t, views[0].LastMessage)
	assert.Equal(t, "hello bob", views[0].LastMessage.Content)
	assert.Equal(t, "alice", views[0].LastMessage.SenderUsername)

	assert.Equal(t, withCarol.ID, views[1].ID)
	assert.Nil(t, views[1].LastMessage)
}
