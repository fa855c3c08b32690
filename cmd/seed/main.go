package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/config"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/graph"
	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/seeder"
	"github.com/TopJodel/topjodel-backend/internal/service"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	if err := viper.ReadInConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := postgres.DB(ctx, config.DBConfigFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to bootstrap postgres tables: %s", err.Error())
	}

	mongoCfg := config.MongoConfigFromEnv()
	mongoClient, err := mongodb.DB(ctx, mongoCfg)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to mongodb: %s", err.Error())
	}
	defer mongoClient.Disconnect(ctx)

	mdb := mongoClient.Database(mongoCfg.DBName)
	if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
		logger.Sugar().Panicf("failed to ensure mongodb indexes: %s", err.Error())
	}

	driver, err := graph.Driver(config.Neo4jConfigFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to create neo4j driver: %s", err.Error())
	}
	defer driver.Close(ctx)

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer rdb.Close()

	repos := repository.New(db, mdb, driver, rdb, logger)
	services := service.New(logger, repos)

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	faker := gofakeit.New(seed)

	s := seeder.New(repos.Mongo, rng, seeder.DefaultConfig(), logger)

	if _, err := s.SeedUsers(ctx, services.Auth, repos.Postgres.User, faker, viper.GetInt("seed.users")); err != nil {
		logger.Sugar().Panicf("failed to seed users: %s", err.Error())
	}
	if _, err := s.SeedPosts(ctx, repos.Mongo, faker, viper.GetInt("seed.posts")); err != nil {
		logger.Sugar().Panicf("failed to seed posts: %s", err.Error())
	}
	if _, err := s.SeedLikes(ctx); err != nil {
		logger.Sugar().Panicf("failed to seed likes: %s", err.Error())
	}

	logger.Info("Seeding complete")
}
