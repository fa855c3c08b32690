package service

import (
	"context"

	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/pkg/utils"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFollowService(logger *zap.Logger, repo *repository.Repository) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
	}
}

// Follow resolves the followee by first/last name against the profile store,
// then merges the FOLLOWS edge. With several matches the first profile wins.
func (s *followService) Follow(ctx context.Context, userID int64, firstName string, lastName string) error {
	ids, err := s.repo.Postgres.Profile.SearchIDs(ctx, "OR", map[string]string{
		"first_name": utils.CleanInput(firstName),
		"last_name":  utils.CleanInput(lastName),
	})
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return postgres.ErrProfileNotFound
	}

	followee, err := s.repo.Postgres.Profile.FindByID(ctx, ids[0])
	if err != nil {
		return err
	}

	follower, err := s.ownUsername(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Graph.Follow(ctx, follower, followee.Username); err != nil {
		s.logger.Sugar().Errorf("failed to create FOLLOWS edge %s -> %s: %s", follower, followee.Username, err.Error())
		return ErrInternal
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, userID int64, followeeUsername string) error {
	follower, err := s.ownUsername(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.Graph.Unfollow(ctx, follower, utils.CleanInput(followeeUsername))
}

func (s *followService) Following(ctx context.Context, userID int64) ([]string, error) {
	username, err := s.ownUsername(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.Graph.Following(ctx, username)
}

func (s *followService) ownUsername(ctx context.Context, userID int64) (string, error) {
	profiles, err := s.repo.Postgres.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return profiles[0].Username, nil
}
