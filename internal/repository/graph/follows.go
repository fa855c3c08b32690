package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type followsRepo struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

func newFollowsRepo(driver neo4j.DriverWithContext, logger *zap.Logger) Follows {
	return &followsRepo{
		driver: driver,
		logger: logger,
	}
}

func (r *followsRepo) EnsureUser(ctx context.Context, username string) error {
	return r.write(ctx, "MERGE (:User {username: $username})", map[string]any{
		"username": username,
	})
}

func (r *followsRepo) Follow(ctx context.Context, follower string, followee string) error {
	return r.write(
		ctx,
		`MERGE (a:User {username: $follower})
		 MERGE (b:User {username: $followee})
		 MERGE (a)-[:FOLLOWS]->(b)`,
		map[string]any{
			"follower": follower,
			"followee": followee,
		},
	)
}

func (r *followsRepo) Unfollow(ctx context.Context, follower string, followee string) error {
	return r.write(
		ctx,
		`MATCH (a:User {username: $follower})-[f:FOLLOWS]->(b:User {username: $followee})
		 DELETE f`,
		map[string]any{
			"follower": follower,
			"followee": followee,
		},
	)
}

func (r *followsRepo) Following(ctx context.Context, username string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	records, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]string, error) {
		result, err := tx.Run(
			ctx,
			"MATCH (:User {username: $username})-[:FOLLOWS]->(b:User) RETURN b.username AS username",
			map[string]any{"username": username},
		)
		if err != nil {
			return nil, err
		}

		var usernames []string
		for result.Next(ctx) {
			value, ok := result.Record().Get("username")
			if !ok {
				continue
			}
			if name, ok := value.(string); ok {
				usernames = append(usernames, name)
			}
		}
		return usernames, result.Err()
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followsRepo) write(ctx context.Context, query string, params map[string]any) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return nil, result.Err()
	})
	return err
}
