package models

import (
	"time"
)

// Conversation groups messages between participants. The model permits any
// number of participants but all product logic assumes exactly two.
type Conversation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;index:conversations_updated_ix;column:updated_at"`

	// Relationships
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;references:ID"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID;references:ID"`
}

// TableName specifies the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant links an account to a conversation
type ConversationParticipant struct {
	ID             int64 `gorm:"primaryKey;autoIncrement;column:id"`
	ConversationID int64 `gorm:"not null;uniqueIndex:conversation_participants_ux;column:conversation_id"`
	AccountID      int64 `gorm:"not null;uniqueIndex:conversation_participants_ux;index:conversation_participants_account_ix;column:account_id"`

	// Relationships
	Conversation *Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
	Account      *Account      `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for ConversationParticipant
func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// Message represents a single message in a conversation.
// IsRead is a legacy field; per-reader receipts in MessageRead supersede it.
type Message struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ConversationID int64     `gorm:"not null;index:messages_conversation_created_ix,priority:1;column:conversation_id"`
	SenderID       int64     `gorm:"not null;column:sender_id"`
	Content        string    `gorm:"type:text;not null;column:content"`
	CreatedAt      time.Time `gorm:"not null;index:messages_conversation_created_ix,priority:2;column:created_at"`
	IsRead         bool      `gorm:"not null;default:false;column:is_read"`

	// Relationships
	Conversation *Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
	Sender       *Account      `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}

// MessageRead marks that a reader has seen a message. Existence of the row
// is the receipt; at most one per (message, reader) pair.
type MessageRead struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	MessageID int64     `gorm:"not null;uniqueIndex:message_reads_pair_ux;column:message_id"`
	ReaderID  int64     `gorm:"not null;uniqueIndex:message_reads_pair_ux;column:reader_id"`
	ReadAt    time.Time `gorm:"not null;column:read_at"`

	// Relationships
	Message *Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE"`
	Reader  *Account `gorm:"foreignKey:ReaderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for MessageRead
func (MessageRead) TableName() string {
	return "message_reads"
}
