package service

import (
	"context"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newAuthService(logger *zap.Logger, repo *repository.Repository) Auth {
	return &authService{
		logger: logger,
		repo:   repo,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (int64, error) {
	username := utils.CleanInput(input.Username)
	email := utils.CleanInput(input.Email)
	password := utils.CleanInput(input.Password)
	firstName := utils.CleanInput(input.FirstName)
	lastName := utils.CleanInput(input.LastName)

	for _, err := range []error{
		utils.ValidateUsername(username),
		utils.ValidateEmail(email),
		utils.ValidatePassword(password),
		utils.ValidateFirstName(firstName),
		utils.ValidateLastName(lastName),
	} {
		if err != nil {
			return 0, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return 0, ErrInternal
	}

	userID, err := s.repo.Postgres.User.Create(ctx, email, string(hash), username, firstName, lastName)
	if err != nil {
		s.logger.Sugar().Errorf("failed to register user(%s): %s", email, err.Error())
		return 0, err
	}

	// The follow graph merges nodes on demand, so a failure here only delays
	// the node until the first follow.
	if err := s.repo.Graph.EnsureUser(ctx, username); err != nil {
		s.logger.Sugar().Errorf("failed to create graph node for user(%s): %s", username, err.Error())
	}

	return userID, nil
}

func (s *authService) checkPassword(ctx context.Context, email string, password string) (int64, error) {
	user, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrWrongPassword
	}

	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, email string, password string) (*dto.LoginResponse, error) {
	email = utils.CleanInput(email)
	password = utils.CleanInput(password)

	userID, err := s.checkPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.repo.Postgres.Token.Issue(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to issue token for user(%d): %s", userID, err.Error())
		return nil, ErrInternal
	}

	return &dto.LoginResponse{UserID: userID, Token: token}, nil
}

func (s *authService) Logout(ctx context.Context, token string) (bool, error) {
	return s.repo.Postgres.Token.Revoke(ctx, utils.CleanInput(token))
}

func (s *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	return s.repo.Postgres.Token.Validate(ctx, utils.CleanInput(token))
}

func (s *authService) ChangeCredentials(ctx context.Context, userID int64, input dto.ChangeCredentialsRequest) error {
	oldUserID, err := s.checkPassword(ctx, utils.CleanInput(input.OldEmail), utils.CleanInput(input.OldPassword))
	if err != nil || oldUserID != userID {
		return ErrWrongCredentials
	}

	updates := make(map[string]interface{})
	if input.NewPassword != nil {
		password := utils.CleanInput(*input.NewPassword)
		if err := utils.ValidatePassword(password); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
			return ErrInternal
		}
		updates["password_hash"] = string(hash)
	}
	if input.NewEmail != nil {
		email := utils.CleanInput(*input.NewEmail)
		if err := utils.ValidateEmail(email); err != nil {
			return err
		}
		updates["email"] = email
	}
	if len(updates) == 0 {
		return ErrNothingToUpdate
	}

	if err := s.repo.Postgres.User.UpdateCredentials(ctx, userID, updates); err != nil {
		s.logger.Sugar().Errorf("failed to change credentials for user(%d): %s", userID, err.Error())
		return ErrInternal
	}
	return nil
}

func (s *authService) DeleteUser(ctx context.Context, userID int64, input dto.DeleteUserRequest) error {
	checkedID, err := s.checkPassword(ctx, utils.CleanInput(input.Email), utils.CleanInput(input.Password))
	if err != nil || checkedID != userID {
		return ErrWrongCredentials
	}

	return s.repo.Postgres.User.Delete(ctx, userID)
}
