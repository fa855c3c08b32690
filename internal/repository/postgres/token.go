package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/TopJodel/topjodel-backend/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const tokenTTL = 24 * time.Hour

type tokenRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newTokenRepo(db *pgxpool.Pool, logger *zap.Logger) Token {
	return &tokenRepo{
		db:     db,
		logger: logger,
	}
}

func (r *tokenRepo) Issue(ctx context.Context, userID int64) (string, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().UTC().Add(tokenTTL)
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO api_tokens(token, user_id, expires_at) VALUES($1, $2, $3)",
		token,
		userID,
		expiresAt,
	); err != nil {
		return "", err
	}

	return token, nil
}

func (r *tokenRepo) Validate(ctx context.Context, token string) (int64, error) {
	var userID int64
	if err := r.db.QueryRow(
		ctx,
		"SELECT user_id FROM api_tokens WHERE token = $1 AND expires_at > $2",
		token,
		time.Now().UTC(),
	).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}

	return userID, nil
}

func (r *tokenRepo) Revoke(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM api_tokens WHERE token = $1", token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
