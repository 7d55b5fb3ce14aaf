package main

import (
	"context"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/cache"
	"github.com/doggr/backend/internal/config"
	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/logger"
	"github.com/doggr/backend/internal/server"
	"github.com/doggr/backend/internal/service/matches"
	"github.com/doggr/backend/internal/service/messages"
	"github.com/doggr/backend/internal/service/profiles"
	"github.com/doggr/backend/internal/service/users"
	"github.com/doggr/backend/internal/storage"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}
	defer func() { _ = db.Close(database) }()

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Init object storage
	store, err := storage.NewClient(context.Background(), cfg)
	if err != nil {
		log.Error("failed to init object storage", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, store, log, cfg)

	registrars := []server.Registrar{
		users.NewRegistrar(appCtx),
		profiles.NewRegistrar(appCtx),
		matches.NewRegistrar(appCtx),
		messages.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	e := server.New(cfg, registrars...)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.Start(e, cfg); err != nil {
		log.Error("HTTP server stopped", "err", err)
	}
}
