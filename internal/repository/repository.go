package repository

import (
	"github.com/TopJodel/topjodel-backend/internal/repository/graph"
	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Mongo    *mongodb.MongoRepository
	Graph    *graph.GraphRepository
	Redis    *redisrepo.RedisRepository
}

func New(db *pgxpool.Pool, mdb *mongo.Database, driver neo4j.DriverWithContext, rdb *redis.Client, logger *zap.Logger) *Repository {
	return &Repository{
		Postgres: postgres.New(db, logger),
		Mongo:    mongodb.New(mdb, logger),
		Graph:    graph.New(driver, logger),
		Redis:    redisrepo.New(rdb),
	}
}
