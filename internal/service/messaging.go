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

// Messaging manages direct conversations between two accounts
type Messaging struct {
	accounts      AccountStore
	conversations ConversationStore
	logger        *zap.Logger
}

// NewMessaging creates the messaging service
func NewMessaging(accounts AccountStore, conversations ConversationStore) *Messaging {
	return &Messaging{
		accounts:      accounts,
		conversations: conversations,
		logger:        logging.GetLogger().With(zap.String("component", "messaging-service")),
	}
}

// StartConversation returns the conversation between the caller and the
// named account, creating it when none exists yet. At most one
// conversation exists per pair.
func (s *Messaging) StartConversation(ctx context.Context, callerID int64, username string) (*ConversationView, error) {
	target, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if target == nil {
		return nil, apperror.NotFound("account", username)
	}
	if target.ID == callerID {
		return nil, apperror.InvalidOperation("cannot start a conversation with yourself")
	}

	conversation, err := s.conversations.FindBetween(ctx, callerID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("looking up conversation: %w", err)
	}
	if conversation == nil {
		conversation, err = s.conversations.Create(ctx, []int64{callerID, target.ID})
		if err != nil {
			return nil, fmt.Errorf("creating conversation: %w", err)
		}
		s.logger.Info("conversation created",
			zap.Int64("conversation_id", conversation.ID),
			zap.Int64("initiator_id", callerID))
	}

	return s.buildConversationView(ctx, callerID, conversation)
}

// SendMessage appends a message from the caller to a conversation they
// participate in, and bumps the conversation's recency.
func (s *Messaging) SendMessage(ctx context.Context, callerID, conversationID int64, content string) (*MessageView, error) {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content", "message content is required")
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       callerID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.conversations.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if err := s.conversations.Touch(ctx, conversationID); err != nil {
		s.logger.Warn("failed to touch conversation",
			zap.Int64("conversation_id", conversationID), zap.Error(err))
	}

	sender, err := s.accounts.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("looking up sender: %w", err)
	}

	view := messageView(message, sender)
	return &view, nil
}

// Messages returns a conversation's messages, oldest first. Listing marks
// every message from other senders as read by the caller; re-listing
// changes nothing.
func (s *Messaging) Messages(ctx context.Context, callerID, conversationID int64) ([]MessageView, error) {
	if err := s.requireParticipant(ctx, callerID, conversationID); err != nil {
		return nil, err
	}

	unread, err := s.conversations.UnreceiptedMessageIDs(ctx, conversationID, callerID)
	if err != nil {
		return nil, fmt.Errorf("finding unread messages: %w", err)
	}
	for _, messageID := range unread {
		if err := s.conversations.CreateReceipt(ctx, messageID, callerID); err != nil {
			return nil, fmt.Errorf("recording read receipt: %w", err)
		}
	}

	messages, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	senderIDs := make([]int64, 0, 2)
	seen := make(map[int64]bool, 2)
	for _, message := range messages {
		if !seen[message.SenderID] {
			seen[message.SenderID] = true
			senderIDs = append(senderIDs, message.SenderID)
		}
	}
	accounts, err := s.accounts.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("loading senders: %w", err)
	}
	senders := make(map[int64]*models.Account, len(accounts))
	for _, account := range accounts {
		senders[account.ID] = account
	}

	views := make([]MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, messageView(message, senders[message.SenderID]))
	}
	return views, nil
}

// Conversations lists the caller's conversations, most recently active
// first, each with the other participant and a preview of the newest
// message.
func (s *Messaging) Conversations(ctx context.Context, callerID int64) ([]ConversationView, error) {
	conversations, err := s.conversations.ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	views := make([]ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		view, err := s.buildConversationView(ctx, callerID, conversation)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *Messaging) requireParticipant(ctx context.Context, callerID, conversationID int64) error {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("looking up conversation: %w", err)
	}
	if conversation == nil {
		return apperror.NotFound("conversation", conversationID)
	}

	isParticipant, err := s.conversations.IsParticipant(ctx, conversationID, callerID)
	if err != nil {
		return fmt.Errorf("checking participation: %w", err)
	}
	if !isParticipant {
		return apperror.Forbidden("not a participant in this conversation")
	}
	return nil
}

func (s *Messaging) buildConversationView(ctx context.Context, callerID int64, conversation *models.Conversation) (*ConversationView, error) {
	view := &ConversationView{
		ID:        conversation.ID,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}

	participantIDs, err := s.conversations.ParticipantIDs(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}
	for _, id := range participantIDs {
		if id == callerID {
			continue
		}
		other, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("looking up participant: %w", err)
		}
		if other != nil {
			view.OtherParticipant = summarize(other)
		}
		break
	}

	last, err := s.conversations.LastMessage(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("loading last message: %w", err)
	}
	if last != nil {
		preview := &LastMessageView{
			Content:   last.Content,
			CreatedAt: last.CreatedAt,
		}
		sender, err := s.accounts.GetByID(ctx, last.SenderID)
		if err != nil {
			return nil, fmt.Errorf("looking up sender: %w", err)
		}
		if sender != nil {
			preview.SenderUsername = sender.Username
		}
		view.LastMessage = preview
	}

	return view, nil
}

func messageView(message *models.Message, sender *models.Account) MessageView {
	view := MessageView{
		ID:        message.ID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		IsRead:    message.IsRead,
	}
	if sender != nil {
		view.Sender = summarize(sender)
	}
	return view
}
