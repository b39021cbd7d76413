package db

import (
	"context"
	"time"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// ConversationRepository provides conversation and message operations
type ConversationRepository struct {
	*Repository
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(repo *Repository) *ConversationRepository {
	return &ConversationRepository{Repository: repo}
}

// GetByID retrieves a conversation by ID
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// FindBetween locates an existing conversation containing both a and b.
// Lookup is by participant-set intersection since the model allows N
// participants even though product logic assumes two.
func (r *ConversationRepository) FindBetween(ctx context.Context, a, b int64) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.account_id = ?", a).
		Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.account_id = ?", b).
		First(&conv).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// Create creates a conversation with the given participants
func (r *ConversationRepository) Create(ctx context.Context, participantIDs []int64) (*models.Conversation, error) {
	now := time.Now().UTC()
	conv := &models.Conversation{CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	for _, id := range participantIDs {
		participant := &models.ConversationParticipant{
			ConversationID: conv.ID,
			AccountID:      id,
		}
		if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// Touch bumps the conversation's update timestamp, used for list ordering
func (r *ConversationRepository) Touch(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}

// ListByParticipant returns conversations containing accountID, most
// recently active first
func (r *ConversationRepository) ListByParticipant(ctx context.Context, accountID int64) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	err := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.account_id = ?", accountID).
		Order("conversations.updated_at DESC").
		Find(&convs).Error
	return convs, err
}

// ParticipantIDs returns the account IDs participating in a conversation
func (r *ConversationRepository) ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Pluck("account_id", &ids).Error
	return ids, err
}

// IsParticipant reports whether accountID participates in the conversation
func (r *ConversationRepository) IsParticipant(ctx context.Context, conversationID, accountID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND account_id = ?", conversationID, accountID).
		Count(&count).Error
	return count > 0, err
}

// CreateMessage persists a message
func (r *ConversationRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages returns all messages of a conversation, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	var msgs []*models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// LastMessage returns the most recent message of a conversation, or nil
func (r *ConversationRepository) LastMessage(ctx context.Context, conversationID int64) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// UnreceiptedMessageIDs returns IDs of messages in the conversation not sent
// by readerID and not yet receipted by readerID
func (r *ConversationRepository) UnreceiptedMessageIDs(ctx context.Context, conversationID, readerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, readerID).
		Where("NOT EXISTS (SELECT 1 FROM message_reads WHERE message_reads.message_id = messages.id AND message_reads.reader_id = ?)", readerID).
		Pluck("id", &ids).Error
	return ids, err
}

// CreateReceipt records that readerID has seen messageID. Duplicate receipts
// from concurrent listings are absorbed by the unique index.
func (r *ConversationRepository) CreateReceipt(ctx context.Context, messageID, readerID int64) error {
	receipt := &models.MessageRead{
		MessageID: messageID,
		ReaderID:  readerID,
		ReadAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return err
	}
	return nil
}
