package config

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MongoConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
}

func (c MongoConfig) URI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/admin", c.Username, c.Password, c.Host, c.Port)
}

type Neo4jConfig struct {
	URI      string
	Username string
	Password string
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Store configs come from the environment; app-level values come from app.yml.
func DBConfigFromEnv() DBConfig {
	return DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func MongoConfigFromEnv() MongoConfig {
	return MongoConfig{
		Username: os.Getenv("MONGO_INITDB_ROOT_USERNAME"),
		Password: os.Getenv("MONGO_INITDB_ROOT_PASSWORD"),
		Host:     os.Getenv("MONGO_HOST"),
		Port:     os.Getenv("MONGO_PORT"),
		DBName:   os.Getenv("MONGO_DB"),
	}
}

func Neo4jConfigFromEnv() Neo4jConfig {
	return Neo4jConfig{
		URI:      os.Getenv("APP_NEO4J_URI"),
		Username: os.Getenv("APP_NEO4J_USER"),
		Password: os.Getenv("APP_NEO4J_PASSWORD"),
	}
}
