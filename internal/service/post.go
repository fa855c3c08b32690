package service

import (
	"context"
	"errors"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	postCacheTTL      = time.Minute * 5
	likeCountCacheTTL = time.Second * 30
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, userID int64, input dto.CreatePostRequest) (*model.Post, error) {
	postID, err := s.repo.Mongo.Create(ctx, userID, input.Title, input.Text, input.Topics)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post for user(%d): %s", userID, err.Error())
		return nil, ErrInternal
	}

	return s.repo.Mongo.FindByID(ctx, postID)
}

func (s *postService) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	cached, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(postID))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", postID, err.Error())
	}

	post, err := s.repo.Mongo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.PostKey(postID), post, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache post(%s): %s", postID, err.Error())
	}

	return post, nil
}

func (s *postService) FindUserPosts(ctx context.Context, userID int64, limit int64, skip int64) ([]*model.Post, error) {
	maxLimit(&limit)
	return s.repo.Mongo.FindByUser(ctx, userID, limit, skip)
}

func (s *postService) Edit(ctx context.Context, postID string, userID int64, input dto.EditPostRequest) (*model.Post, error) {
	post, err := s.repo.Mongo.Edit(ctx, postID, userID, input.Title, input.Text)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, redisrepo.PostKey(postID))
	return post, nil
}

func (s *postService) UpdateTopics(ctx context.Context, postID string, userID int64, topics []string) (*model.Post, error) {
	post, err := s.repo.Mongo.UpdateTopics(ctx, postID, userID, topics)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, redisrepo.PostKey(postID))
	return post, nil
}

func (s *postService) Delete(ctx context.Context, postID string, userID int64) error {
	if err := s.repo.Mongo.Delete(ctx, postID, userID); err != nil {
		return err
	}

	s.invalidate(ctx, redisrepo.PostKey(postID), redisrepo.LikeCountKey(postID))
	return nil
}

// Like is idempotent per user: a repeated like reports created=false and
// leaves the counter alone.
func (s *postService) Like(ctx context.Context, postID string, userID int64) (bool, error) {
	created, err := s.repo.Mongo.AddLike(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	if created {
		s.invalidate(ctx, redisrepo.PostKey(postID), redisrepo.LikeCountKey(postID))
	}
	return created, nil
}

func (s *postService) LikeCount(ctx context.Context, postID string) (int64, error) {
	cached, err := redisrepo.Get[int64](s.repo.Redis.Default, ctx, redisrepo.LikeCountKey(postID))
	if err == nil && cached != nil {
		return *cached, nil
	}

	count, err := s.repo.Mongo.LikeCount(ctx, postID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.LikeCountKey(postID), count, likeCountCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache like count for post(%s): %s", postID, err.Error())
	}

	return count, nil
}

func (s *postService) SyncLikeCounters(ctx context.Context) error {
	return s.repo.Mongo.SyncLikeCounters(ctx)
}

func (s *postService) invalidate(ctx context.Context, keys ...string) {
	if err := s.repo.Redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cache keys %v: %s", keys, err.Error())
	}
}
