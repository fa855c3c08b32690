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

type profileRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func newProfileRepo(db *pgxpool.Pool, logger *zap.Logger) Profile {
	return &profileRepo{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepo) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	return r.findOne(ctx, "SELECT id, user_id, username, first_name, last_name, updated_at FROM profile WHERE id = $1", id)
}

func (r *profileRepo) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	return r.findOne(ctx, "SELECT id, user_id, username, first_name, last_name, updated_at FROM profile WHERE username = $1", username)
}

func (r *profileRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.FirstName,
		&profile.LastName,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID int64) ([]*model.Profile, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, user_id, username, first_name, last_name, updated_at FROM profile WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		var profile model.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Username,
			&profile.FirstName,
			&profile.LastName,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}

	return profiles, nil
}

func (r *profileRepo) SearchIDs(ctx context.Context, op string, criteria map[string]string) ([]int64, error) {
	query, args, ok := buildProfileSearch(op, criteria)
	if !ok {
		return nil, ErrFieldsNotAllowedToUpdate
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *profileRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	allowed := map[string]struct{}{"username": {}, "first_name": {}, "last_name": {}}
	for field := range updates {
		if _, ok := allowed[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}
	if len(updates) == 0 {
		return ErrNothingToUpdate
	}
	updates["updated_at"] = time.Now().UTC()

	query, args := buildUpdateQuery("profile", updates, id)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
