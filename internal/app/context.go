package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/doggr/backend/internal/cache"
	"github.com/doggr/backend/internal/config"
	"github.com/doggr/backend/internal/storage"
)

// AppContext holds shared dependencies (DB, Redis, object storage, logger, config).
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Storage    storage.Uploader
	Logger     *slog.Logger
	Config     *config.Config
}

// New creates a new AppContext
func New(db *gorm.DB, rdb *cache.RedisCache, store storage.Uploader, logger *slog.Logger, cfg *config.Config) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Storage:    store,
		Logger:     logger,
		Config:     cfg,
	}
}
