package service

import (
	"context"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/pkg/utils"
	"go.uber.org/zap"
)

type profileService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newProfileService(logger *zap.Logger, repo *repository.Repository) Profile {
	return &profileService{
		logger: logger,
		repo:   repo,
	}
}

func (s *profileService) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	return s.repo.Postgres.Profile.FindByID(ctx, id)
}

func (s *profileService) FindByUserID(ctx context.Context, userID int64) ([]*model.Profile, error) {
	return s.repo.Postgres.Profile.FindByUserID(ctx, userID)
}

func (s *profileService) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	return s.repo.Postgres.Profile.FindByUsername(ctx, utils.CleanInput(username))
}

func (s *profileService) Search(ctx context.Context, op string, criteria map[string]string) ([]int64, error) {
	cleaned := make(map[string]string, len(criteria))
	for field, value := range criteria {
		cleaned[field] = utils.CleanInput(value)
	}
	return s.repo.Postgres.Profile.SearchIDs(ctx, op, cleaned)
}

// Change updates a profile owned by userID. id/user_id/updated_at are never
// caller-settable.
func (s *profileService) Change(ctx context.Context, userID int64, profileID int64, updates map[string]string) error {
	profile, err := s.repo.Postgres.Profile.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.UserID != userID {
		return postgres.ErrProfileNotFound
	}

	cleaned := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		if field == "id" || field == "user_id" || field == "updated_at" {
			continue
		}
		cleaned[field] = utils.CleanInput(value)
	}
	if len(cleaned) == 0 {
		return ErrNothingToUpdate
	}

	return s.repo.Postgres.Profile.Update(ctx, profileID, cleaned)
}
