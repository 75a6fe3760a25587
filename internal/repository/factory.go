package repository

import (
	"fmt"

	"github.com/navikt/mrooms/internal/config"
	"github.com/navikt/mrooms/internal/repository/memory"
	"github.com/navikt/mrooms/internal/repository/mongo"
	"github.com/navikt/mrooms/internal/repository/redis"
)

// NewRepository creates a repository for the configured storage driver
func NewRepository(cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return memory.NewRepository(), nil
	case config.DriverRedis:
		return redis.NewRepository(cfg.Redis)
	case config.DriverMongo:
		return mongo.NewRepository(cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
