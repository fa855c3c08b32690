package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/graph"
	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type memProfiles struct {
	nextID int64
	byID   map[int64]*model.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{nextID: 1, byID: make(map[int64]*model.Profile)}
}

func (m *memProfiles) add(userID int64, username string, firstName string, lastName string) {
	id := m.nextID
	m.nextID++
	m.byID[id] = &model.Profile{
		ID:        id,
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}
}

func (m *memProfiles) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	profile, ok := m.byID[id]
	if !ok {
		return nil, postgres.ErrProfileNotFound
	}
	return profile, nil
}

func (m *memProfiles) FindByUserID(ctx context.Context, userID int64) ([]*model.Profile, error) {
	var profiles []*model.Profile
	for _, profile := range m.byID {
		if profile.UserID == userID {
			profiles = append(profiles, profile)
		}
	}
	if len(profiles) == 0 {
		return nil, postgres.ErrProfileNotFound
	}
	return profiles, nil
}

func (m *memProfiles) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	for _, profile := range m.byID {
		if profile.Username == username {
			return profile, nil
		}
	}
	return nil, postgres.ErrProfileNotFound
}

func (m *memProfiles) SearchIDs(ctx context.Context, op string, criteria map[string]string) ([]int64, error) {
	var ids []int64
	for id := int64(1); id < m.nextID; id++ {
		profile, ok := m.byID[id]
		if !ok {
			continue
		}
		if profile.FirstName == criteria["first_name"] || profile.LastName == criteria["last_name"] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memProfiles) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	profile, ok := m.byID[id]
	if !ok {
		return postgres.ErrProfileNotFound
	}
	if username, ok := updates["username"].(string); ok {
		profile.Username = username
	}
	return nil
}

type feedFixture struct {
	profiles *memProfiles
	follows  *memFollows
	posts    *memPosts
	follow   Follow
	feed     Feed
}

func newFeedFixture() *feedFixture {
	f := &feedFixture{
		profiles: newMemProfiles(),
		follows:  newMemFollows(),
		posts:    newMemPosts(),
	}
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{Profile: f.profiles},
		Mongo:    &mongodb.MongoRepository{Posts: f.posts},
		Graph:    &graph.GraphRepository{Follows: f.follows},
		Redis:    &redisrepo.RedisRepository{Default: newFakeCache()},
	}
	logger := zap.NewNop()
	f.follow = newFollowService(logger, repo)
	f.feed = newFeedService(logger, repo)
	return f
}

// addPost creates a post with a controlled timestamp so ordering assertions
// do not depend on the clock.
func (f *feedFixture) addPost(t *testing.T, userID int64, title string, createdAt time.Time) string {
	t.Helper()
	id, err := f.posts.Create(context.Background(), userID, title, "text", nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	f.posts.posts[id].CreatedAt = createdAt
	return id
}

func TestNewsFeedOwnPostsWhenFollowingNobody(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture()
	f.profiles.add(1, "alice", "Alice", "Smith")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, 1, "mine", base)
	f.addPost(t, 2, "someone else", base)

	feed, err := f.feed.GetNewsFeed(ctx, 1, 20)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(feed) != 1 || feed[0].Title != "mine" {
		t.Fatalf("feed for a loner = %v, want only own post", feed)
	}
}

func TestNewsFeedMergesFollowedUsers(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture()
	f.profiles.add(1, "alice", "Alice", "Smith")
	f.profiles.add(2, "bob", "Bob", "Jones")
	f.profiles.add(3, "carol", "Carol", "Brown")
	f.profiles.add(4, "dave", "Dave", "White")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, 1, "own post", base.Add(3*time.Hour))
	f.addPost(t, 2, "bob old", base)
	f.addPost(t, 2, "bob new", base.Add(2*time.Hour))
	f.addPost(t, 3, "carol post", base.Add(time.Hour))
	f.addPost(t, 4, "dave post", base.Add(4*time.Hour))

	if err := f.follow.Follow(ctx, 1, "Bob", "Jones"); err != nil {
		t.Fatalf("follow bob: %v", err)
	}
	if err := f.follow.Follow(ctx, 1, "Carol", "Brown"); err != nil {
		t.Fatalf("follow carol: %v", err)
	}

	feed, err := f.feed.GetNewsFeed(ctx, 1, 20)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}

	var titles []string
	for _, post := range feed {
		titles = append(titles, post.Title)
	}
	want := []string{"bob new", "carol post", "bob old"}
	if len(titles) != len(want) {
		t.Fatalf("feed titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("feed titles = %v, want %v", titles, want)
		}
	}
}

func TestNewsFeedSkipsDeletedAccounts(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture()
	f.profiles.add(1, "alice", "Alice", "Smith")
	f.profiles.add(2, "bob", "Bob", "Jones")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, 2, "bob post", base)

	// Stale graph edge to an account whose profile row is gone.
	f.follows.Follow(ctx, "alice", "ghost")
	f.follows.Follow(ctx, "alice", "bob")

	feed, err := f.feed.GetNewsFeed(ctx, 1, 20)
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(feed) != 1 || feed[0].Title != "bob post" {
		t.Fatalf("feed = %v, want only bob's post", feed)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture()
	f.profiles.add(1, "alice", "Alice", "Smith")

	err := f.follow.Follow(ctx, 1, "Nobody", "Here")
	if !errors.Is(err, postgres.ErrProfileNotFound) {
		t.Fatalf("follow unknown: err = %v, want ErrProfileNotFound", err)
	}
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture()
	f.profiles.add(1, "alice", "Alice", "Smith")
	f.profiles.add(2, "bob", "Bob", "Jones")

	if err := f.follow.Follow(ctx, 1, "Bob", "Jones"); err != nil {
		t.Fatalf("follow: %v", err)
	}

	following, err := f.follow.Following(ctx, 1)
	if err != nil {
		t.Fatalf("following: %v", err)
	}
	if len(following) != 1 || following[0] != "bob" {
		t.Fatalf("following = %v, want [bob]", following)
	}

	if err := f.follow.Unfollow(ctx, 1, "bob"); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	following, err = f.follow.Following(ctx, 1)
	if err != nil {
		t.Fatalf("following after unfollow: %v", err)
	}
	if len(following) != 0 {
		t.Fatalf("following = %v, want empty", following)
	}
}
