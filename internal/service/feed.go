package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const feedCacheTTL = time.Second * 30

type feedService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFeedService(logger *zap.Logger, repo *repository.Repository) Feed {
	return &feedService{
		logger: logger,
		repo:   repo,
	}
}

// GetNewsFeed merges the latest posts of every followed user, newest first.
// A user following nobody sees their own latest posts.
func (s *feedService) GetNewsFeed(ctx context.Context, userID int64, limit int64) ([]*model.Post, error) {
	maxLimit(&limit)

	cached, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.FeedKey(userID, limit))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get feed for user(%d) from redis: %s", userID, err.Error())
	}

	feed, err := s.buildFeed(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.FeedKey(userID, limit), feed, feedCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache feed for user(%d): %s", userID, err.Error())
	}

	return feed, nil
}

func (s *feedService) buildFeed(ctx context.Context, userID int64, limit int64) ([]*model.Post, error) {
	profiles, err := s.repo.Postgres.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.repo.Graph.Following(ctx, profiles[0].Username)
	if err != nil {
		s.logger.Sugar().Errorf("failed to query follows for user(%d): %s", userID, err.Error())
		return nil, ErrInternal
	}

	if len(following) == 0 {
		return s.repo.Mongo.FindByUser(ctx, userID, limit, 0)
	}

	lists := make([][]*model.Post, 0, len(following))
	for _, username := range following {
		profile, err := s.repo.Postgres.Profile.FindByUsername(ctx, username)
		if err != nil {
			// A graph node without a profile row means the account is gone;
			// skip it rather than failing the whole feed.
			if errors.Is(err, postgres.ErrProfileNotFound) {
				continue
			}
			return nil, err
		}

		posts, err := s.repo.Mongo.FindByUser(ctx, profile.UserID, limit, 0)
		if err != nil {
			return nil, err
		}
		lists = append(lists, posts)
	}

	return mergeFeed(lists, limit), nil
}

// mergeFeed flattens per-user post lists into one newest-first feed capped at
// limit. Ties break on post id so the order is stable.
func mergeFeed(lists [][]*model.Post, limit int64) []*model.Post {
	var merged []*model.Post
	for _, list := range lists {
		merged = append(merged, list...)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID.Hex() < merged[j].ID.Hex()
	})

	if int64(len(merged)) > limit {
		merged = merged[:limit]
	}
	return merged
}
