package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TopJodel/topjodel-backend/internal/config"
	"github.com/TopJodel/topjodel-backend/internal/handler"
	"github.com/TopJodel/topjodel-backend/internal/repository"
	"github.com/TopJodel/topjodel-backend/internal/repository/graph"
	"github.com/TopJodel/topjodel-backend/internal/repository/mongodb"
	"github.com/TopJodel/topjodel-backend/internal/repository/postgres"
	"github.com/TopJodel/topjodel-backend/internal/server"
	"github.com/TopJodel/topjodel-backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := postgres.DB(ctx, config.DBConfigFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	defer db.Close()
	logger.Info("Successfully connected to PostgreSQL")

	if err := postgres.Bootstrap(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to bootstrap postgres tables: %s", err.Error())
	}

	mongoCfg := config.MongoConfigFromEnv()
	mongoClient, err := mongodb.DB(ctx, mongoCfg)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to mongodb: %s", err.Error())
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Sugar().Panicf("failed to ping mongodb: %s", err.Error())
	}
	defer mongoClient.Disconnect(ctx)
	logger.Info("Successfully connected to MongoDB")

	mdb := mongoClient.Database(mongoCfg.DBName)
	if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
		logger.Sugar().Panicf("failed to ensure mongodb indexes: %s", err.Error())
	}

	driver, err := graph.Driver(config.Neo4jConfigFromEnv())
	if err != nil {
		logger.Sugar().Panicf("failed to create neo4j driver: %s", err.Error())
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping neo4j: %s", err.Error())
	}
	defer driver.Close(ctx)
	logger.Info("Successfully connected to Neo4j")

	if err := graph.EnsureConstraints(ctx, driver); err != nil {
		logger.Sugar().Panicf("failed to ensure neo4j constraints: %s", err.Error())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	defer rdb.Close()
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	repos := repository.New(db, mdb, driver, rdb, logger)
	services := service.New(logger, repos)
	handlers := handler.New(services, logger)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func() {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Errorf("http server stopped: %s", err.Error())
		}
	}()

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
