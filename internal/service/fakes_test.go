package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
)

type pair struct{ a, b int64 }

// memStore is an in-memory implementation of every store interface,
// backing the service tests without a database. Uniqueness of the pair
// tables is enforced the way the real storage layer does, by rejecting
// duplicate pairs with ErrAlreadyExists.
type memStore struct {
	mu sync.Mutex

	nextID    int64
	accounts  map[int64]*models.Account
	follows   []*models.Follow
	blocks    []*models.Block
	posts     map[int64]*models.Post
	postOrder []int64
	likes     map[pair]bool
	saves     map[pair]*models.SavedPost

	conversations map[int64]*models.Conversation
	participants  map[int64][]int64
	messages      []*models.Message
	receipts      map[pair]time.Time

	activities []*models.Activity
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      map[int64]*models.Account{},
		posts:         map[int64]*models.Post{},
		likes:         map[pair]bool{},
		saves:         map[pair]*models.SavedPost{},
		conversations: map[int64]*models.Conversation{},
		participants:  map[int64][]int64{},
		receipts:      map[pair]time.Time{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// AccountStore

func (m *memStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[id], nil
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetByIDs(_ context.Context, ids []int64) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*models.Account{}
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *memStore) Create(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == account.Username {
			return apperror.AlreadyExists("username already taken")
		}
		if a.Email == account.Email {
			return apperror.AlreadyExists("email already registered")
		}
	}
	account.ID = m.id()
	m.accounts[account.ID] = account
	return nil
}

func (m *memStore) Update(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *memStore) Search(_ context.Context, query string, excludeID int64, limit, offset int) ([]*models.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	matched := []*models.Account{}
	for _, a := range m.accounts {
		if a.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(a.Username), q) ||
			strings.Contains(strings.ToLower(a.FullName), q) ||
			strings.Contains(strings.ToLower(a.Bio), q) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LastActive.After(matched[j].LastActive)
	})
	total := int64(len(matched))
	matched = slicePage(matched, limit, offset)
	return matched, total, nil
}

// SocialStore

func (m *memStore) FollowExists(_ context.Context, followerID, followedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.followIndex(followerID, followedID) >= 0, nil
}

func (m *memStore) followIndex(followerID, followedID int64) int {
	for i, f := range m.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return i
		}
	}
	return -1
}

func (m *memStore) CreateFollow(_ context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.followIndex(follow.FollowerID, follow.FollowedID) >= 0 {
		return apperror.AlreadyExists("already following")
	}
	follow.ID = m.id()
	m.follows = append(m.follows, follow)
	return nil
}

func (m *memStore) DeleteFollow(_ context.Context, followerID, followedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.followIndex(followerID, followedID)
	if i < 0 {
		return false, nil
	}
	m.follows = append(m.follows[:i], m.follows[i+1:]...)
	return true, nil
}

func (m *memStore) DeleteFollowsBetween(_ context.Context, a, b int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.follows[:0]
	for _, f := range m.follows {
		between := (f.FollowerID == a && f.FollowedID == b) || (f.FollowerID == b && f.FollowedID == a)
		if !between {
			kept = append(kept, f)
		}
	}
	m.follows = kept
	return nil
}

func (m *memStore) CountFollowers(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, f := range m.follows {
		if f.FollowedID == accountID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountFollowing(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, f := range m.follows {
		if f.FollowerID == accountID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) FollowingIDs(_ context.Context, accountID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []int64{}
	for _, f := range m.follows {
		if f.FollowerID == accountID {
			ids = append(ids, f.FollowedID)
		}
	}
	return ids, nil
}

func (m *memStore) FollowersOf(_ context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := []*models.Account{}
	for i := len(m.follows) - 1; i >= 0; i-- {
		if m.follows[i].FollowedID == accountID {
			accounts = append(accounts, m.accounts[m.follows[i].FollowerID])
		}
	}
	total := int64(len(accounts))
	return slicePage(accounts, limit, offset), total, nil
}

func (m *memStore) FollowingOf(_ context.Context, accountID int64, limit, offset int) ([]*models.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := []*models.Account{}
	for i := len(m.follows) - 1; i >= 0; i-- {
		if m.follows[i].FollowerID == accountID {
			accounts = append(accounts, m.accounts[m.follows[i].FollowedID])
		}
	}
	total := int64(len(accounts))
	return slicePage(accounts, limit, offset), total, nil
}

func (m *memStore) FollowedByAnyOf(_ context.Context, followerIDs []int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in := map[int64]bool{}
	for _, id := range followerIDs {
		in[id] = true
	}
	seen := map[int64]bool{}
	ids := []int64{}
	for _, f := range m.follows {
		if in[f.FollowerID] && !seen[f.FollowedID] {
			seen[f.FollowedID] = true
			ids = append(ids, f.FollowedID)
		}
	}
	return ids, nil
}

func (m *memStore) BlockExists(_ context.Context, blockerID, blockedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blockIndex(blockerID, blockedID) >= 0, nil
}

func (m *memStore) blockIndex(blockerID, blockedID int64) int {
	for i, b := range m.blocks {
		if b.BlockerID == blockerID && b.BlockedID == blockedID {
			return i
		}
	}
	return -1
}

func (m *memStore) BlockExistsBetween(_ context.Context, a, b int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blockIndex(a, b) >= 0 || m.blockIndex(b, a) >= 0, nil
}

func (m *memStore) CreateBlock(_ context.Context, block *models.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blockIndex(block.BlockerID, block.BlockedID) >= 0 {
		return apperror.AlreadyExists("already blocked")
	}
	block.ID = m.id()
	m.blocks = append(m.blocks, block)
	return nil
}

func (m *memStore) DeleteBlock(_ context.Context, blockerID, blockedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.blockIndex(blockerID, blockedID)
	if i < 0 {
		return false, nil
	}
	m.blocks = append(m.blocks[:i], m.blocks[i+1:]...)
	return true, nil
}

// PostStore

func (m *memStore) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return m.getPost(id), nil
}

func (m *memStore) getPost(id int64) *models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts[id]
}

func (m *memStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.id()
	m.posts[post.ID] = post
	m.postOrder = append(m.postOrder, post.ID)
	return nil
}

func (m *memStore) allPosts(filter func(*models.Post) bool) []*models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*models.Post{}
	for _, id := range m.postOrder {
		if p := m.posts[id]; p != nil && filter(p) {
			result = append(result, p)
		}
	}
	return result
}

func newestFirst(posts []*models.Post) []*models.Post {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (m *memStore) ListTimeline(_ context.Context) ([]*models.Post, error) {
	return newestFirst(m.allPosts(func(p *models.Post) bool { return !p.IsReply })), nil
}

func (m *memStore) ListReplies(_ context.Context, parentID int64) ([]*models.Post, error) {
	return newestFirst(m.allPosts(func(p *models.Post) bool {
		return p.ParentID.Valid && p.ParentID.Int64 == parentID
	})), nil
}

func (m *memStore) ListByAuthor(_ context.Context, authorID int64, isReply bool) ([]*models.Post, error) {
	return newestFirst(m.allPosts(func(p *models.Post) bool {
		return p.AuthorID == authorID && p.IsReply == isReply
	})), nil
}

func (m *memStore) ListMediaByAuthor(_ context.Context, authorID int64) ([]*models.Post, error) {
	return newestFirst(m.allPosts(func(p *models.Post) bool {
		return p.AuthorID == authorID && p.MediaType != models.MediaTypeNone
	})), nil
}

func (m *memStore) CountByAuthor(ctx context.Context, authorID int64, isReply bool) (int64, error) {
	posts, _ := m.ListByAuthor(ctx, authorID, isReply)
	return int64(len(posts)), nil
}

func (m *memStore) CountMediaByAuthor(ctx context.Context, authorID int64) (int64, error) {
	posts, _ := m.ListMediaByAuthor(ctx, authorID)
	return int64(len(posts)), nil
}

func (m *memStore) CountReplies(ctx context.Context, postID int64) (int64, error) {
	posts, _ := m.ListReplies(ctx, postID)
	return int64(len(posts)), nil
}

// EngagementStore

func (m *memStore) LikeExists(_ context.Context, accountID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[pair{accountID, postID}], nil
}

func (m *memStore) CreateLike(_ context.Context, accountID, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{accountID, postID}
	if m.likes[key] {
		return apperror.AlreadyExists("already liked")
	}
	m.likes[key] = true
	return nil
}

func (m *memStore) DeleteLike(_ context.Context, accountID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{accountID, postID}
	if !m.likes[key] {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *memStore) CountLikes(_ context.Context, postID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if key.b == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountLikedBy(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if key.a == accountID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListLikedPosts(_ context.Context, accountID int64) ([]*models.Post, error) {
	liked := map[int64]bool{}
	m.mu.Lock()
	for key := range m.likes {
		if key.a == accountID {
			liked[key.b] = true
		}
	}
	m.mu.Unlock()
	return newestFirst(m.allPosts(func(p *models.Post) bool { return liked[p.ID] })), nil
}

func (m *memStore) SaveExists(_ context.Context, accountID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saves[pair{accountID, postID}]
	return ok, nil
}

func (m *memStore) CreateSave(_ context.Context, saved *models.SavedPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{saved.AccountID, saved.PostID}
	if _, ok := m.saves[key]; ok {
		return apperror.AlreadyExists("already saved")
	}
	saved.ID = m.id()
	m.saves[key] = saved
	return nil
}

func (m *memStore) DeleteSave(_ context.Context, accountID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{accountID, postID}
	if _, ok := m.saves[key]; !ok {
		return false, nil
	}
	delete(m.saves, key)
	return true, nil
}

func (m *memStore) CountSavedBy(_ context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.saves {
		if key.a == accountID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListSaved(_ context.Context, accountID int64) ([]*models.SavedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []*models.SavedPost{}
	for key, saved := range m.saves {
		if key.a == accountID {
			rows = append(rows, saved)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SavedAt.Equal(rows[j].SavedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].SavedAt.After(rows[j].SavedAt)
	})
	return rows, nil
}

// ConversationStore

func (m *memStore) GetConversationByID(_ context.Context, id int64) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conversations[id], nil
}

func (m *memStore) FindBetween(_ context.Context, a, b int64) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, members := range m.participants {
		if len(members) == 2 && contains(members, a) && contains(members, b) {
			return m.conversations[id], nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateConversation(_ context.Context, participantIDs []int64) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	conversation := &models.Conversation{ID: m.id(), CreatedAt: now, UpdatedAt: now}
	m.conversations[conversation.ID] = conversation
	m.participants[conversation.ID] = append([]int64{}, participantIDs...)
	return conversation, nil
}

func (m *memStore) Touch(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.conversations[id]; ok {
		c.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (m *memStore) ListByParticipant(_ context.Context, accountID int64) ([]*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*models.Conversation{}
	for id, members := range m.participants {
		if contains(members, accountID) {
			result = append(result, m.conversations[id])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (m *memStore) ParticipantIDs(_ context.Context, conversationID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64{}, m.participants[conversationID]...), nil
}

func (m *memStore) IsParticipant(_ context.Context, conversationID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return contains(m.participants[conversationID], accountID), nil
}

func (m *memStore) CreateMessage(_ context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.id()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memStore) ListMessages(_ context.Context, conversationID int64) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*models.Message{}
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (m *memStore) LastMessage(_ context.Context, conversationID int64) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *models.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			last = msg
		}
	}
	return last, nil
}

func (m *memStore) UnreceiptedMessageIDs(_ context.Context, conversationID, readerID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []int64{}
	for _, msg := range m.messages {
		if msg.ConversationID != conversationID || msg.SenderID == readerID {
			continue
		}
		if _, ok := m.receipts[pair{msg.ID, readerID}]; !ok {
			ids = append(ids, msg.ID)
		}
	}
	return ids, nil
}

func (m *memStore) CreateReceipt(_ context.Context, messageID, readerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{messageID, readerID}
	if _, ok := m.receipts[key]; !ok {
		m.receipts[key] = time.Now().UTC()
	}
	return nil
}

// ActivityStore

func (m *memStore) CreateActivity(_ context.Context, activity *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	activity.ID = m.id()
	m.activities = append(m.activities, activity)
	return nil
}

func (m *memStore) ListByAccount(_ context.Context, accountID int64, limit, offset int) ([]*models.Activity, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*models.Activity{}
	for i := len(m.activities) - 1; i >= 0; i-- {
		if m.activities[i].AccountID == accountID {
			result = append(result, m.activities[i])
		}
	}
	total := int64(len(result))
	return slicePage(result, limit, offset), total, nil
}

func (m *memStore) kinds(accountID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := []string{}
	for _, a := range m.activities {
		if a.AccountID == accountID {
			kinds = append(kinds, a.Kind)
		}
	}
	return kinds
}

// fakePosts adapts memStore to PostStore, renaming the methods that
// collide with the account store.
type fakePosts struct{ *memStore }

func (f fakePosts) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.GetPostByID(ctx, id)
}

func (f fakePosts) Create(ctx context.Context, post *models.Post) error {
	return f.CreatePost(ctx, post)
}

// fakeConversations adapts memStore to ConversationStore
type fakeConversations struct{ *memStore }

func (f fakeConversations) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	return f.GetConversationByID(ctx, id)
}

func (f fakeConversations) Create(ctx context.Context, participantIDs []int64) (*models.Conversation, error) {
	return f.CreateConversation(ctx, participantIDs)
}

// fakeActivities adapts memStore to ActivityStore
type fakeActivities struct{ *memStore }

func (f fakeActivities) Create(ctx context.Context, activity *models.Activity) error {
	return f.CreateActivity(ctx, activity)
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// testEnv wires every service over one shared in-memory store
type testEnv struct {
	store     *memStore
	accounts  *Accounts
	social    *SocialGraph
	content   *Content
	messaging *Messaging
	activity  *Activity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	posts := fakePosts{store}
	conversations := fakeConversations{store}
	activity := NewActivity(fakeActivities{store})

	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	passwords := auth.NewPasswordService(bcrypt.MinCost)

	return &testEnv{
		store:     store,
		accounts:  NewAccounts(store, store, posts, store, activity, passwords, tokens),
		social:    NewSocialGraph(store, store, activity, nil),
		content:   NewContent(store, posts, store, activity),
		messaging: NewMessaging(store, conversations),
		activity:  activity,
	}
}

// account inserts an account directly into the store
func (e *testEnv) account(t *testing.T, username string) *models.Account {
	t.Helper()
	a := &models.Account{
		Username:   username,
		Email:      username + "@example.com",
		FullName:   username + " example",
		DateJoined: time.Now().UTC(),
		LastActive: time.Now().UTC(),
	}
	if err := e.store.Create(context.Background(), a); err != nil {
		t.Fatalf("creating account %s: %v", username, err)
	}
	return a
}

// post inserts a top-level post directly into the store
func (e *testEnv) post(t *testing.T, authorID int64, content string) *models.Post {
	t.Helper()
	now := time.Now().UTC()
	p := &models.Post{
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
		MediaType: models.MediaTypeNone,
	}
	if err := e.store.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return p
}
