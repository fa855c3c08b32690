package mongodb

import (
	"context"
	"errors"

	"github.com/TopJodel/topjodel-backend/internal/config"
	"github.com/TopJodel/topjodel-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("user is not the owner of the post")
)

type Posts interface {
	Create(ctx context.Context, userID int64, title string, text string, topics []string) (string, error)
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	FindByUser(ctx context.Context, userID int64, limit int64, skip int64) ([]*model.Post, error)
	Edit(ctx context.Context, postID string, ownerID int64, title *string, text *string) (*model.Post, error)
	UpdateTopics(ctx context.Context, postID string, ownerID int64, topics []string) (*model.Post, error)
	Delete(ctx context.Context, postID string, ownerID int64) error

	AddLike(ctx context.Context, postID string, userID int64) (bool, error)
	AddLikes(ctx context.Context, likes []model.Like) (int64, error)
	LikeCount(ctx context.Context, postID string) (int64, error)
	FindLikes(ctx context.Context, postID string) ([]*model.Like, error)
	CountAllLikes(ctx context.Context) (int64, error)
	CountAllPosts(ctx context.Context) (int64, error)
	EachPostID(ctx context.Context, fn func(id primitive.ObjectID) error) error
	SyncLikeCounters(ctx context.Context) error
}

type MongoRepository struct {
	Posts
}

func New(db *mongo.Database, logger *zap.Logger) *MongoRepository {
	return &MongoRepository{
		Posts: newPostsRepo(db, logger),
	}
}

func DB(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	return mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI()))
}

// EnsureIndexes creates the query indexes and the unique (post_id, user_id)
// index on post_likes. The unique index is the arbiter for concurrent likes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(postsColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "topics", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(likesColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
	})
	return err
}
