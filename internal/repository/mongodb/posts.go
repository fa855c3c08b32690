package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	postsColl = "posts"
	likesColl = "post_likes"
)

type postsRepo struct {
	posts  *mongo.Collection
	likes  *mongo.Collection
	logger *zap.Logger
}

func newPostsRepo(db *mongo.Database, logger *zap.Logger) Posts {
	return &postsRepo{
		posts:  db.Collection(postsColl),
		likes:  db.Collection(likesColl),
		logger: logger,
	}
}

func oid(postID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return primitive.NilObjectID, ErrPostNotFound
	}
	return id, nil
}

func (r *postsRepo) Create(ctx context.Context, userID int64, title string, text string, topics []string) (string, error) {
	now := time.Now().UTC()
	if topics == nil {
		topics = []string{}
	}
	res, err := r.posts.InsertOne(ctx, bson.M{
		"user_id":    userID,
		"title":      title,
		"text":       text,
		"topics":     dedupeTopics(topics),
		"likes":      int64(0),
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return "", err
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *postsRepo) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	id, err := oid(postID)
	if err != nil {
		return nil, err
	}

	var post model.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return &post, nil
}

func (r *postsRepo) FindByUser(ctx context.Context, userID int64, limit int64, skip int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.posts.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postsRepo) Edit(ctx context.Context, postID string, ownerID int64, title *string, text *string) (*model.Post, error) {
	id, err := oid(postID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if title != nil {
		set["title"] = *title
	}
	if text != nil {
		set["text"] = *text
	}
	if len(set) == 0 {
		return r.FindByID(ctx, postID)
	}
	set["updated_at"] = time.Now().UTC()

	return r.updateOwned(ctx, id, ownerID, bson.M{"$set": set})
}

func (r *postsRepo) UpdateTopics(ctx context.Context, postID string, ownerID int64, topics []string) (*model.Post, error) {
	id, err := oid(postID)
	if err != nil {
		return nil, err
	}

	return r.updateOwned(ctx, id, ownerID, bson.M{"$set": bson.M{
		"topics":     dedupeTopics(topics),
		"updated_at": time.Now().UTC(),
	}})
}

// updateOwned applies an owner-guarded update and distinguishes "post belongs
// to someone else" from "post does not exist" when nothing matched.
func (r *postsRepo) updateOwned(ctx context.Context, id primitive.ObjectID, ownerID int64, update bson.M) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post model.Post
	err := r.posts.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": ownerID}, update, opts).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return nil, r.ownershipErr(ctx, id)
}

func (r *postsRepo) ownershipErr(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.posts.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrNotOwner
	}
	return ErrPostNotFound
}

// Delete removes the post and cascades to its like records.
func (r *postsRepo) Delete(ctx context.Context, postID string, ownerID int64) error {
	id, err := oid(postID)
	if err != nil {
		return err
	}

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return r.ownershipErr(ctx, id)
	}

	if _, err := r.likes.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return err
	}
	return nil
}

// AddLike records that userID liked postID. The unique (post_id, user_id)
// index arbitrates concurrent attempts; a duplicate is a no-op, not an error.
// The counter increment runs only after the record is durably created.
func (r *postsRepo) AddLike(ctx context.Context, postID string, userID int64) (bool, error) {
	id, err := oid(postID)
	if err != nil {
		return false, err
	}

	res, err := r.likes.UpdateOne(
		ctx,
		bson.M{"post_id": id, "user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"post_id":    id,
			"user_id":    userID,
			"created_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	created := res.UpsertedID != nil
	if created {
		if _, err := r.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}}); err != nil {
			// The like record is durable; a lost increment is repaired by
			// SyncLikeCounters or the LikeCount fallback.
			r.logger.Sugar().Errorf("failed to increment like counter for post(%s): %s", postID, err.Error())
		}
	}

	return created, nil
}

// AddLikes bulk-inserts like records with unordered idempotent upserts and
// returns how many were actually created. Counters are not touched; callers
// run SyncLikeCounters afterwards.
func (r *postsRepo) AddLikes(ctx context.Context, likes []model.Like) (int64, error) {
	if len(likes) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(likes))
	for _, like := range likes {
		createdAt := like.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"post_id": like.PostID, "user_id": like.UserID}).
			SetUpdate(bson.M{"$setOnInsert": bson.M{
				"post_id":    like.PostID,
				"user_id":    like.UserID,
				"created_at": createdAt,
			}}).
			SetUpsert(true))
	}

	res, err := r.likes.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		// Unordered upserts can still race on the unique index; duplicates
		// are expected and the rest of the batch has been applied.
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && allDuplicates(bwe) {
			if res != nil {
				return res.UpsertedCount, nil
			}
			return 0, nil
		}
		return 0, err
	}

	return res.UpsertedCount, nil
}

func allDuplicates(bwe mongo.BulkWriteException) bool {
	for _, we := range bwe.WriteErrors {
		if we.Code != 11000 {
			return false
		}
	}
	return len(bwe.WriteErrors) > 0
}

// LikeCount returns the cached counter when the field is present. A post
// without the field gets the exact record count computed and written back, so
// legacy documents heal on first read.
func (r *postsRepo) LikeCount(ctx context.Context, postID string) (int64, error) {
	id, err := oid(postID)
	if err != nil {
		return 0, err
	}

	var doc struct {
		Likes *int64 `bson:"likes"`
	}
	err = r.posts.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"likes": 1})).Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}
	if err == nil && doc.Likes != nil {
		return *doc.Likes, nil
	}

	count, err := r.likes.CountDocuments(ctx, bson.M{"post_id": id})
	if err != nil {
		return 0, err
	}

	if _, err := r.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"likes": count}}); err != nil {
		r.logger.Sugar().Errorf("failed to backfill like counter for post(%s): %s", postID, err.Error())
	}

	return count, nil
}

func (r *postsRepo) FindLikes(ctx context.Context, postID string) ([]*model.Like, error) {
	id, err := oid(postID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.likes.Find(ctx, bson.M{"post_id": id})
	if err != nil {
		return nil, err
	}

	var likes []*model.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, err
	}

	return likes, nil
}

func (r *postsRepo) CountAllLikes(ctx context.Context) (int64, error) {
	return r.likes.EstimatedDocumentCount(ctx)
}

func (r *postsRepo) CountAllPosts(ctx context.Context) (int64, error) {
	return r.posts.EstimatedDocumentCount(ctx)
}

// EachPostID streams post ids without materializing the collection.
func (r *postsRepo) EachPostID(ctx context.Context, fn func(id primitive.ObjectID) error) error {
	cursor, err := r.posts.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := fn(doc.ID); err != nil {
			return err
		}
	}

	return cursor.Err()
}

// SyncLikeCounters recomputes every counter from the like records with a
// server-side aggregation, so no record set ever passes through this process.
// Posts with zero like records are left untouched; counts for posts that no
// longer exist are discarded. Idempotent, safe alongside ongoing likes.
func (r *postsRepo) SyncLikeCounters(ctx context.Context) error {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$post_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$merge", Value: bson.M{
			"into": postsColl,
			"on":   "_id",
			"whenMatched": bson.A{
				bson.M{"$set": bson.M{"likes": "$$new.count"}},
			},
			"whenNotMatched": "discard",
		}}},
	}

	cursor, err := r.likes.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
	}
	return cursor.Err()
}

// dedupeTopics drops duplicates while keeping first-occurrence order.
func dedupeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}
	return out
}
