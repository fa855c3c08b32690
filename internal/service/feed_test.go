package service

import (
	"testing"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedPost(t *testing.T, hexID string, createdAt time.Time) *model.Post {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		t.Fatalf("bad object id %s: %v", hexID, err)
	}
	return &model.Post{ID: id, CreatedAt: createdAt}
}

func TestMergeFeedNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldest := feedPost(t, "650000000000000000000001", base)
	middle := feedPost(t, "650000000000000000000002", base.Add(time.Hour))
	newest := feedPost(t, "650000000000000000000003", base.Add(2*time.Hour))

	merged := mergeFeed([][]*model.Post{
		{oldest, newest},
		{middle},
	}, 50)

	if len(merged) != 3 {
		t.Fatalf("merged %d posts, want 3", len(merged))
	}
	for i, want := range []*model.Post{newest, middle, oldest} {
		if merged[i].ID != want.ID {
			t.Fatalf("position %d holds %s, want %s", i, merged[i].ID.Hex(), want.ID.Hex())
		}
	}
}

func TestMergeFeedTruncatesToLimit(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var list []*model.Post
	for i := 0; i < 5; i++ {
		list = append(list, feedPost(t, "65000000000000000000000"+string(rune('1'+i)), base.Add(time.Duration(i)*time.Minute)))
	}

	merged := mergeFeed([][]*model.Post{list}, 2)
	if len(merged) != 2 {
		t.Fatalf("merged %d posts, want 2", len(merged))
	}
	if merged[0].CreatedAt.Before(merged[1].CreatedAt) {
		t.Fatal("truncated feed is not newest first")
	}
}

func TestMergeFeedBreaksTiesOnID(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := feedPost(t, "65000000000000000000000a", at)
	b := feedPost(t, "65000000000000000000000b", at)

	merged := mergeFeed([][]*model.Post{{b}, {a}}, 50)
	if merged[0].ID != a.ID || merged[1].ID != b.ID {
		t.Fatal("equal timestamps did not order by post id")
	}
}

func TestMergeFeedEmpty(t *testing.T) {
	if merged := mergeFeed(nil, 50); len(merged) != 0 {
		t.Fatalf("merged %d posts from no lists, want 0", len(merged))
	}
}
