package seeder

import (
	"context"
	"math"
	"math/rand"

	"github.com/TopJodel/topjodel-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LikeStore is the slice of the posts repository the like seeder needs.
type LikeStore interface {
	AddLikes(ctx context.Context, likes []model.Like) (int64, error)
	CountAllLikes(ctx context.Context) (int64, error)
	EachPostID(ctx context.Context, fn func(id primitive.ObjectID) error) error
	SyncLikeCounters(ctx context.Context) error
}

type Config struct {
	MinUserID       int64
	MaxUserID       int64
	AvgLikesPerPost int
	MaxLikesPerPost int
	BatchSize       int
}

func DefaultConfig() Config {
	return Config{
		MinUserID:       1,
		MaxUserID:       80,
		AvgLikesPerPost: 10,
		MaxLikesPerPost: 120,
		BatchSize:       5000,
	}
}

type Seeder struct {
	store  LikeStore
	rng    *rand.Rand
	cfg    Config
	logger *zap.Logger
}

// New builds a seeder around an explicit random source so runs are
// reproducible under a fixed seed.
func New(store LikeStore, rng *rand.Rand, cfg Config, logger *zap.Logger) *Seeder {
	return &Seeder{
		store:  store,
		rng:    rng,
		cfg:    cfg,
		logger: logger,
	}
}

// SeedLikes generates synthetic like activity: every post draws a
// heavy-tailed like count, then that many distinct users from the configured
// range. Inserts go through idempotent upserts, so re-running against an
// already seeded dataset creates nothing. Returns the number of like records
// actually created.
func (s *Seeder) SeedLikes(ctx context.Context) (int64, error) {
	existing, err := s.store.CountAllLikes(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.logger.Sugar().Infof("database already has %d likes, skipping like seeding", existing)
		return 0, nil
	}

	var (
		batch   []model.Like
		created int64
		planned int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.store.AddLikes(ctx, batch)
		if err != nil {
			return err
		}
		created += n
		batch = batch[:0]
		return nil
	}

	err = s.store.EachPostID(ctx, func(id primitive.ObjectID) error {
		k := HeavyTailedLikeCount(s.rng, s.cfg.AvgLikesPerPost, s.cfg.MaxLikesPerPost)
		if k <= 0 {
			return nil
		}

		for _, userID := range SampleUsers(s.rng, k, s.cfg.MinUserID, s.cfg.MaxUserID) {
			batch = append(batch, model.Like{PostID: id, UserID: userID})
		}
		planned += k

		if len(batch) >= s.cfg.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return created, err
	}
	if err := flush(); err != nil {
		return created, err
	}

	s.logger.Sugar().Infof("planned ~%d likes, created %d (duplicates skipped)", planned, created)

	if err := s.store.SyncLikeCounters(ctx); err != nil {
		return created, err
	}
	s.logger.Info("like counters synced to posts")

	return created, nil
}

// HeavyTailedLikeCount draws a like count with a heavy tail so a few posts
// come out disproportionately popular. Pareto with alpha 2 gives a reasonable
// skew around avg, bounded by cap.
func HeavyTailedLikeCount(r *rand.Rand, avg int, maxCap int) int {
	base := int(paretovariate(r, 2.0) * float64(avg) / 2)
	if base < 0 {
		base = 0
	}
	if base > maxCap {
		return maxCap
	}
	return base
}

func paretovariate(r *rand.Rand, alpha float64) float64 {
	u := 1.0 - r.Float64() // (0, 1]
	return 1.0 / math.Pow(u, 1.0/alpha)
}

// SampleUsers draws k distinct user ids uniformly from [min, max]. k is
// capped at the range size.
func SampleUsers(r *rand.Rand, k int, min int64, max int64) []int64 {
	n := int(max - min + 1)
	if n <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	users := make([]int64, 0, k)
	for _, offset := range r.Perm(n)[:k] {
		users = append(users, min+int64(offset))
	}
	return users
}
