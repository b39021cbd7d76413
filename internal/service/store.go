// Package service implements the business rules of the platform over
// storage interfaces. Handlers stay transport-only; stores stay
// persistence-only. Derived counts are always computed at read time.
package service

import (
	"context"
	"errors"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

// AccountStore provides account persistence. Lookups return (nil, nil)
// when no record matches.
type AccountStore interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	Search(ctx context.Context, query string, excludeID int64, limit, offset int) ([]*models.Account, int64, error)
}

// SocialStore provides follow and block edge persistence. Creates surface
// apperror.ErrAlreadyExists on duplicate pairs; uniqueness is enforced by
// the storage layer, not checked in application logic.
type SocialStore interface {
	FollowExists(ctx context.Context, followerID, followedID int64) (bool, error)
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID int64) (bool, error)
	DeleteFollowsBetween(ctx context.Context, a, b int64) error
	CountFollowers(ctx context.Context, accountID int64) (int64, error)
	CountFollowing(ctx context.Context, accountID int64) (int64, error)
	FollowingIDs(ctx context.Context, accountID int64) ([]int64, error)
	FollowersOf(ctx context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error)
	FollowingOf(ctx context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error)
	FollowedByAnyOf(ctx context.Context, followerIDs []int64) ([]int64, error)
	BlockExists(ctx context.Context, blockerID, blockedID int64) (bool, error)
	BlockExistsBetween(ctx context.Context, a, b int64) (bool, error)
	CreateBlock(ctx context.Context, block *models.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedID int64) (bool, error)
}

// PostStore provides post persistence
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	ListTimeline(ctx context.Context) ([]*models.Post, error)
	ListReplies(ctx context.Context, parentID int64) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, isReply bool) ([]*models.Post, error)
	ListMediaByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID int64, isReply bool) (int64, error)
	CountMediaByAuthor(ctx context.Context, authorID int64) (int64, error)
	CountReplies(ctx context.Context, postID int64) (int64, error)
}

// EngagementStore provides like and saved-post persistence
type EngagementStore interface {
	LikeExists(ctx context.Context, accountID, postID int64) (bool, error)
	CreateLike(ctx context.Context, accountID, postID int64) error
	DeleteLike(ctx context.Context, accountID, postID int64) (bool, error)
	CountLikes(ctx context.Context, postID int64) (int64, error)
	CountLikedBy(ctx context.Context, accountID int64) (int64, error)
	ListLikedPosts(ctx context.Context, accountID int64) ([]*models.Post, error)
	SaveExists(ctx context.Context, accountID, postID int64) (bool, error)
	CreateSave(ctx context.Context, saved *models.SavedPost) error
	DeleteSave(ctx context.Context, accountID, postID int64) (bool, error)
	CountSavedBy(ctx context.Context, accountID int64) (int64, error)
	ListSaved(ctx context.Context, accountID int64) ([]*models.SavedPost, error)
}

// ConversationStore provides conversation, message and receipt persistence
type ConversationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	FindBetween(ctx context.Context, a, b int64) (*models.Conversation, error)
	Create(ctx context.Context, participantIDs []int64) (*models.Conversation, error)
	Touch(ctx context.Context, id int64) error
	ListByParticipant(ctx context.Context, accountID int64) ([]*models.Conversation, error)
	ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error)
	IsParticipant(ctx context.Context, conversationID, accountID int64) (bool, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error)
	LastMessage(ctx context.Context, conversationID int64) (*models.Message, error)
	UnreceiptedMessageIDs(ctx context.Context, conversationID, readerID int64) ([]int64, error)
	CreateReceipt(ctx context.Context, messageID, readerID int64) error
}

// ActivityStore provides append-only activity log persistence
type ActivityStore interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.Activity, int64, error)
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, apperror.ErrAlreadyExists)
}
