package service

import (
	"context"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"go.uber.org/zap"
)

const MAX_LIMIT = 50

func maxLimit(limit *int64) {
	if *limit > MAX_LIMIT || *limit <= 0 {
		*limit = MAX_LIMIT
	}
}

type Auth interface {
	Register(ctx context.Context, input dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, email string, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) (bool, error)
	Authenticate(ctx context.Context, token string) (int64, error)
	ChangeCredentials(ctx context.Context, userID int64, input dto.ChangeCredentialsRequest) error
	DeleteUser(ctx context.Context, userID int64, input dto.DeleteUserRequest) error
}

type Profile interface {
	FindByID(ctx context.Context, id int64) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID int64) ([]*model.Profile, error)
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)
	Search(ctx context.Context, op string, criteria map[string]string) ([]int64, error)
	Change(ctx context.Context, userID int64, profileID int64, updates map[string]string) error
}

type Post interface {
	Create(ctx context.Context, userID int64, input dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	FindUserPosts(ctx context.Context, userID int64, limit int64, skip int64) ([]*model.Post, error)
	Edit(ctx context.Context, postID string, userID int64, input dto.EditPostRequest) (*model.Post, error)
	UpdateTopics(ctx context.Context, postID string, userID int64, topics []string) (*model.Post, error)
	Delete(ctx context.Context, postID string, userID int64) error

	Like(ctx context.Context, postID string, userID int64) (bool, error)
	LikeCount(ctx context.Context, postID string) (int64, error)
	SyncLikeCounters(ctx context.Context) error
}

type Follow interface {
	Follow(ctx context.Context, userID int64, firstName string, lastName string) error
	Unfollow(ctx context.Context, userID int64, followeeUsername string) error
	Following(ctx context.Context, userID int64) ([]string, error)
}

type Feed interface {
	GetNewsFeed(ctx context.Context, userID int64, limit int64) ([]*model.Post, error)
}

type Service struct {
	Auth
	Profile
	Post
	Follow
	Feed
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		Auth:    newAuthService(logger, repo),
		Profile: newProfileService(logger, repo),
		Post:    newPostService(logger, repo),
		Follow:  newFollowService(logger, repo),
		Feed:    newFeedService(logger, repo),
	}
}
