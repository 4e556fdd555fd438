package app

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/jrsteele09/go-docadmin/session/storage/filestore"
	"github.com/jrsteele09/go-docadmin/session/storage/redisstore"
	fakestoragerepo "github.com/jrsteele09/go-docadmin/session/storage/repofake"
	"github.com/jrsteele09/go-docadmin/session/storage/sqlstore"
	"github.com/rs/zerolog/log"
)

// NewStorage opens the durable session backend named by SESSION_STORE
func NewStorage(ctx context.Context, cfg config.StorageConfig) (storage.Repo, error) {
	kind := cfg.GetSessionStore()
	log.Debug().Str("store", kind).Msg("Opening session storage")

	switch kind {
	case config.StoreFile:
		return filestore.New(cfg.GetSessionFile(), cfg.GetSessionKey())
	case config.StoreRedis:
		opts, err := redisstore.OptionsFromURL(cfg.GetRedisURL(), cfg.GetRedisPassword(), cfg.GetRedisDB(), cfg.GetSessionNamespace())
		if err != nil {
			return nil, fmt.Errorf("[NewStorage] %v: %w", err, errors.ErrConfig)
		}
		return redisstore.New(ctx, opts)
	case config.StorePostgres:
		return sqlstore.Open(cfg.GetDatabaseDSN(), cfg.GetSessionNamespace())
	case config.StoreMemory:
		return fakestoragerepo.NewFakeStorageRepo(), nil
	default:
		return nil, fmt.Errorf("[NewStorage] unknown session store %q: %w", kind, errors.ErrConfig)
	}
}
