package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post lives in the "posts" collection. Likes is a denormalized counter over
// the "post_likes" collection; post_likes is the source of truth and the
// counter is reconciled against it.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    int64              `json:"user_id" bson:"user_id"`
	Title     string             `json:"title" bson:"title"`
	Text      string             `json:"text" bson:"text"`
	Topics    []string           `json:"topics" bson:"topics"`
	Likes     int64              `json:"likes" bson:"likes"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Like is unique per (post_id, user_id); never updated after creation.
type Like struct {
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	UserID    int64              `json:"user_id" bson:"user_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
