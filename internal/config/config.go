// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
)

// Storage driver names accepted in STORAGE_DRIVER
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// RedisConfig holds Redis/Valkey configuration
type RedisConfig struct {
	// URI is prioritized if provided, otherwise individual connection
	// parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// StorageConfig selects and configures the repository driver
type StorageConfig struct {
	Driver string
	Redis  RedisConfig
	Mongo  MongoConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// GetStorageConfig loads storage configuration from environment variables
func GetStorageConfig() StorageConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return StorageConfig{
		Driver: getEnv("STORAGE_DRIVER", DriverMemory),
		Redis: RedisConfig{
			URI:       getEnv("REDIS_URI", ""),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Username:  getEnv("REDIS_USERNAME", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        db,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "mrooms:"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "mrooms"),
		},
	}
}

// GetServerConfig loads HTTP server configuration from environment variables
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "8080"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
