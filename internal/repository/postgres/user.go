package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type userRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newUserRepo(db *pgxpool.Pool, logger *zap.Logger) User {
	return &userRepo{
		db:     db,
		logger: logger,
	}
}

// Create inserts the user and its profile in one transaction so a failed
// profile insert never leaves an orphaned user row.
func (r *userRepo) Create(ctx context.Context, email string, passwordHash string, username string, firstName string, lastName string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var userID int64
	if err := tx.QueryRow(
		ctx,
		"INSERT INTO users(email, password_hash) VALUES($1, $2) RETURNING id",
		email,
		passwordHash,
	).Scan(&userID); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO profile(user_id, username, first_name, last_name) VALUES($1, $2, $3, $4)",
		userID,
		username,
		firstName,
		lastName,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return userID, nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, email, created_at, updated_at FROM users WHERE id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1",
		email,
	).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) UpdateCredentials(ctx context.Context, id int64, updates map[string]interface{}) error {
	allowed := map[string]struct{}{"email": {}, "password_hash": {}}
	for field := range updates {
		if _, ok := allowed[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}
	if len(updates) == 0 {
		return ErrNothingToUpdate
	}
	updates["updated_at"] = time.Now().UTC()

	query, args := buildUpdateQuery("users", updates, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
