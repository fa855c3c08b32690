package graph

import (
	"context"

	"github.com/TopJodel/topjodel-backend/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type Follows interface {
	EnsureUser(ctx context.Context, username string) error
	Follow(ctx context.Context, follower string, followee string) error
	Unfollow(ctx context.Context, follower string, followee string) error
	Following(ctx context.Context, username string) ([]string, error)
}

type GraphRepository struct {
	Follows
}

func New(driver neo4j.DriverWithContext, logger *zap.Logger) *GraphRepository {
	return &GraphRepository{
		Follows: newFollowsRepo(driver, logger),
	}
}

func Driver(cfg config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
}

// EnsureConstraints creates the uniqueness constraint backing MERGE on
// (:User {username}).
func EnsureConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(
		ctx,
		"CREATE CONSTRAINT user_username IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
		nil,
	)
	return err
}
