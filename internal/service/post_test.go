package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeCache is an in-memory redisrepo.Default.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = string(b)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := c.data[key]; ok {
			delete(c.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// memPosts is an in-memory mongodb.Posts honoring the like store contract:
// the like set arbitrates uniqueness, the counter is a cached projection with
// a self-healing read, and reconciliation recomputes counters from records.
type memPosts struct {
	mu         sync.Mutex
	posts      map[string]*model.Post
	hasCounter map[string]bool
	likes      map[string]map[int64]time.Time
}

func newMemPosts() *memPosts {
	return &memPosts{
		posts:      make(map[string]*model.Post),
		hasCounter: make(map[string]bool),
		likes:      make(map[string]map[int64]time.Time),
	}
}

func (m *memPosts) Create(ctx context.Context, userID int64, title string, text string, topics []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	id := primitive.NewObjectID()
	m.posts[id.Hex()] = &model.Post{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Text:      text,
		Topics:    topics,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.hasCounter[id.Hex()] = true
	return id.Hex(), nil
}

func (m *memPosts) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return nil, mongodb.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *memPosts) FindByUser(ctx context.Context, userID int64, limit int64, skip int64) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []*model.Post
	for _, post := range m.posts {
		if post.UserID == userID {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *memPosts) Edit(ctx context.Context, postID string, ownerID int64, title *string, text *string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return nil, mongodb.ErrPostNotFound
	}
	if post.UserID != ownerID {
		return nil, mongodb.ErrNotOwner
	}
	if title != nil {
		post.Title = *title
	}
	if text != nil {
		post.Text = *text
	}
	copied := *post
	return &copied, nil
}

func (m *memPosts) UpdateTopics(ctx context.Context, postID string, ownerID int64, topics []string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return nil, mongodb.ErrPostNotFound
	}
	if post.UserID != ownerID {
		return nil, mongodb.ErrNotOwner
	}
	post.Topics = topics
	copied := *post
	return &copied, nil
}

func (m *memPosts) Delete(ctx context.Context, postID string, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return mongodb.ErrPostNotFound
	}
	if post.UserID != ownerID {
		return mongodb.ErrNotOwner
	}
	delete(m.posts, postID)
	delete(m.hasCounter, postID)
	delete(m.likes, postID)
	return nil
}

func (m *memPosts) AddLike(ctx context.Context, postID string, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.likes[postID]
	if !ok {
		set = make(map[int64]time.Time)
		m.likes[postID] = set
	}
	if _, exists := set[userID]; exists {
		return false, nil
	}
	set[userID] = time.Now().UTC()
	if post, ok := m.posts[postID]; ok {
		post.Likes++
	}
	return true, nil
}

func (m *memPosts) AddLikes(ctx context.Context, likes []model.Like) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var created int64
	for _, like := range likes {
		postID := like.PostID.Hex()
		set, ok := m.likes[postID]
		if !ok {
			set = make(map[int64]time.Time)
			m.likes[postID] = set
		}
		if _, exists := set[like.UserID]; exists {
			continue
		}
		set[like.UserID] = time.Now().UTC()
		created++
	}
	return created, nil
}

func (m *memPosts) LikeCount(ctx context.Context, postID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post, ok := m.posts[postID]; ok && m.hasCounter[postID] {
		return post.Likes, nil
	}
	count := int64(len(m.likes[postID]))
	if post, ok := m.posts[postID]; ok {
		post.Likes = count
		m.hasCounter[postID] = true
	}
	return count, nil
}

func (m *memPosts) FindLikes(ctx context.Context, postID string) ([]*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, mongodb.ErrPostNotFound
	}
	var likes []*model.Like
	for userID, createdAt := range m.likes[postID] {
		likes = append(likes, &model.Like{PostID: oid, UserID: userID, CreatedAt: createdAt})
	}
	return likes, nil
}

func (m *memPosts) CountAllLikes(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, set := range m.likes {
		total += int64(len(set))
	}
	return total, nil
}

func (m *memPosts) CountAllPosts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.posts)), nil
}

func (m *memPosts) EachPostID(ctx context.Context, fn func(id primitive.ObjectID) error) error {
	m.mu.Lock()
	ids := make([]primitive.ObjectID, 0, len(m.posts))
	for _, post := range m.posts {
		ids = append(ids, post.ID)
	}
	m.mu.Unlock()

	for _, id := range ids {
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func (m *memPosts) SyncLikeCounters(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for postID, set := range m.likes {
		if len(set) == 0 {
			continue
		}
		if post, ok := m.posts[postID]; ok {
			post.Likes = int64(len(set))
			m.hasCounter[postID] = true
		}
	}
	return nil
}

func newTestPostService(store mongodb.Posts) Post {
	repo := &repository.Repository{
		Mongo: &mongodb.MongoRepository{Posts: store},
		Redis: &redisrepo.RedisRepository{Default: newFakeCache()},
	}
	return newPostService(zap.NewNop(), repo)
}

func TestLikeTwiceIncrementsOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	postID, _ := store.Create(ctx, 1, "title", "text", nil)

	created, err := svc.Like(ctx, postID, 7)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if !created {
		t.Fatal("first like reported created=false")
	}

	created, err = svc.Like(ctx, postID, 7)
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if created {
		t.Fatal("second like reported created=true")
	}

	count, err := svc.LikeCount(ctx, postID)
	if err != nil {
		t.Fatalf("like count: %v", err)
	}
	if count != 1 {
		t.Fatalf("like count = %d, want 1", count)
	}
}

func TestConcurrentDistinctLikers(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	postID, _ := store.Create(ctx, 1, "title", "text", nil)

	const n = 64
	var wg sync.WaitGroup
	createdCh := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			created, err := svc.Like(ctx, postID, userID)
			if err != nil {
				t.Errorf("like by user %d: %v", userID, err)
				return
			}
			createdCh <- created
		}(int64(i + 1))
	}
	wg.Wait()
	close(createdCh)

	var created int
	for c := range createdCh {
		if c {
			created++
		}
	}
	if created != n {
		t.Fatalf("created %d likes, want %d", created, n)
	}

	count, err := svc.LikeCount(ctx, postID)
	if err != nil {
		t.Fatalf("like count: %v", err)
	}
	if count != n {
		t.Fatalf("like count = %d, want %d", count, n)
	}
}

func TestLikeCountBackfillsMissingCounter(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	// Legacy post without the counter field.
	emptyID, _ := store.Create(ctx, 1, "no likes", "text", nil)
	store.hasCounter[emptyID] = false

	count, err := svc.LikeCount(ctx, emptyID)
	if err != nil {
		t.Fatalf("like count: %v", err)
	}
	if count != 0 {
		t.Fatalf("like count = %d, want 0", count)
	}
	if !store.hasCounter[emptyID] {
		t.Fatal("counter was not backfilled for post with zero likes")
	}

	likedID, _ := store.Create(ctx, 1, "liked", "text", nil)
	for userID := int64(1); userID <= 5; userID++ {
		if _, err := svc.Like(ctx, likedID, userID); err != nil {
			t.Fatalf("like by user %d: %v", userID, err)
		}
	}
	store.hasCounter[likedID] = false
	store.posts[likedID].Likes = 0

	count, err = svc.LikeCount(ctx, likedID)
	if err != nil {
		t.Fatalf("like count: %v", err)
	}
	if count != 5 {
		t.Fatalf("like count = %d, want 5", count)
	}
	if store.posts[likedID].Likes != 5 {
		t.Fatalf("backfilled counter = %d, want 5", store.posts[likedID].Likes)
	}
}

func TestSyncLikeCountersIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	postID, _ := store.Create(ctx, 1, "title", "text", nil)
	for userID := int64(1); userID <= 3; userID++ {
		if _, err := svc.Like(ctx, postID, userID); err != nil {
			t.Fatalf("like by user %d: %v", userID, err)
		}
	}
	// Simulate drift from a lost increment.
	store.posts[postID].Likes = 1

	if err := svc.SyncLikeCounters(ctx); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	first := store.posts[postID].Likes

	if err := svc.SyncLikeCounters(ctx); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	second := store.posts[postID].Likes

	if first != 3 || second != 3 {
		t.Fatalf("counters after syncs = %d, %d, want 3, 3", first, second)
	}
}

func TestDeleteCascadesLikes(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	postID, _ := store.Create(ctx, 1, "title", "text", nil)
	if _, err := svc.Like(ctx, postID, 7); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := svc.Delete(ctx, postID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	likes, err := store.FindLikes(ctx, postID)
	if err != nil {
		t.Fatalf("find likes: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("found %d like records after cascade, want 0", len(likes))
	}
}

func TestEditRejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	store := newMemPosts()
	svc := newTestPostService(store)

	postID, _ := store.Create(ctx, 1, "title", "text", nil)

	title := "hijacked"
	if _, err := svc.Edit(ctx, postID, 2, dto.EditPostRequest{Title: &title}); err != mongodb.ErrNotOwner {
		t.Fatalf("edit by non-owner: err = %v, want ErrNotOwner", err)
	}
}
