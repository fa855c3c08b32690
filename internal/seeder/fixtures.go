package seeder

import (
	"context"
	"fmt"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/brianvoe/gofakeit/v6"
)

// Registrar is the slice of the auth service the fixture seeder needs.
type Registrar interface {
	Register(ctx context.Context, input dto.RegisterRequest) (int64, error)
}

type PostStore interface {
	Create(ctx context.Context, userID int64, title string, text string, topics []string) (string, error)
	CountAllPosts(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SeedUsers registers count fake accounts. Individual registration failures
// (duplicate usernames from the generator, mostly) are logged and skipped.
func (s *Seeder) SeedUsers(ctx context.Context, registrar Registrar, users UserCounter, faker *gofakeit.Faker, count int) (int64, error) {
	existing, err := users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.logger.Sugar().Infof("database already has %d users, skipping user seeding", existing)
		return 0, nil
	}

	var created int64
	for i := 0; i < count; i++ {
		firstName := faker.FirstName()
		lastName := faker.LastName()
		input := dto.RegisterRequest{
			Username:  fmt.Sprintf("%s%s%d", firstName, lastName, faker.Number(1, 9999)),
			Email:     faker.Email(),
			Password:  fmt.Sprintf("Aa1%s", faker.DigitN(8)),
			FirstName: firstName,
			LastName:  lastName,
		}

		if _, err := registrar.Register(ctx, input); err != nil {
			s.logger.Sugar().Warnf("failed to seed user %s: %s", input.Username, err.Error())
			continue
		}
		created++
	}

	s.logger.Sugar().Infof("seeded %d users", created)
	return created, nil
}

// SeedPosts creates count fake posts attributed to random users in the
// configured id range.
func (s *Seeder) SeedPosts(ctx context.Context, posts PostStore, faker *gofakeit.Faker, count int) (int64, error) {
	existing, err := posts.CountAllPosts(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.logger.Sugar().Infof("database already has %d posts, skipping post seeding", existing)
		return 0, nil
	}

	var created int64
	for i := 0; i < count; i++ {
		userID := s.cfg.MinUserID + s.rng.Int63n(s.cfg.MaxUserID-s.cfg.MinUserID+1)
		topics := make([]string, 0, 3)
		for j := 0; j < faker.Number(1, 3); j++ {
			topics = append(topics, faker.Word())
		}

		if _, err := posts.Create(ctx, userID, faker.Sentence(5), faker.Paragraph(1, 3, 10, " "), topics); err != nil {
			s.logger.Sugar().Warnf("failed to seed post for user %d: %s", userID, err.Error())
			continue
		}
		created++
	}

	s.logger.Sugar().Infof("seeded %d posts", created)
	return created, nil
}
