package postgres

import (
	"context"
	"errors"

	"github.com/TopJodel/topjodel-backend/internal/config"
	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrProfileNotFound          = errors.New("profile not found")
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
	ErrNothingToUpdate          = errors.New("nothing to update")
)

type User interface {
	Create(ctx context.Context, email string, passwordHash string, username string, firstName string, lastName string) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateCredentials(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type Profile interface {
	FindByID(ctx context.Context, id int64) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID int64) ([]*model.Profile, error)
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)
	SearchIDs(ctx context.Context, op string, criteria map[string]string) ([]int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
}

type Token interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Validate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

type PostgresRepository struct {
	User
	Profile
	Token
}

func New(db *pgxpool.Pool, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		User:    newUserRepo(db, logger),
		Profile: newProfileRepo(db, logger),
		Token:   newTokenRepo(db, logger),
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.DSN())
}
