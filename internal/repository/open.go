package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/repository/memory"
	"github.com/Rrens/mindcare/internal/repository/mongo"
	"github.com/Rrens/mindcare/internal/repository/mysql"
	"github.com/Rrens/mindcare/internal/repository/postgres"
	"github.com/Rrens/mindcare/internal/repository/redis"
	"github.com/Rrens/mindcare/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
)

// Backend names accepted by storage.backend
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMongo    = "mongo"
)

// Open connects the blob store selected by cfg.Storage.Backend. The redis
// backend reuses redisClient when one is already connected.
func Open(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (domain.BlobStore, error) {
	if cfg.Storage.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Storage.Timeout)
		defer cancel()
	}

	backend := cfg.Storage.Backend
	log.Info().Str("backend", backend).Msg("opening blob store")

	switch backend {
	case BackendMemory:
		return memory.NewStore(), nil

	case BackendSQLite, "":
		store, err := sqlite.Open(ctx, cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil

	case BackendRedis:
		keys := NewKeys(cfg.Storage.KeyPrefix)
		if redisClient != nil {
			return redis.NewStore(redisClient).WithKeyTTL(keys.Presession, cfg.Cache.HandoffTTL), nil
		}
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redis.NewOwnedStore(client).WithKeyTTL(keys.Presession, cfg.Cache.HandoffTTL), nil

	case BackendPostgres:
		if err := postgres.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
			return nil, err
		}
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil

	case BackendMySQL:
		store, err := mysql.Open(ctx, cfg.Storage.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil

	case BackendMongo:
		store, err := mongo.Open(ctx, cfg.Storage.Mongo, cfg.Storage.Timeout)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
