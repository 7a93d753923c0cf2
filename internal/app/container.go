package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"geostud-api/internal/config"
	"geostud-api/internal/database"
	"geostud-api/internal/database/migration"
	dbpostgres "geostud-api/internal/database/postgres"
	"geostud-api/internal/database/seeder"
	"geostud-api/internal/infrastructure/cache"
	"geostud-api/internal/messaging"
	"geostud-api/internal/notify"
	"geostud-api/internal/usecase"
	"geostud-api/internal/ws"
)

// Container holds the process-wide infrastructure: database, cache, NATS and
// the WebSocket hub, wired once at startup.
type Container struct {
	Config   config.Config
	Logger   *log.Logger
	DB       database.DB
	Cache    *cache.Redis
	NATS     *messaging.NATSClient
	Hub      *ws.Hub
	Notifier usecase.Notifier
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	mig := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := mig.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if cfg.App.SeedOnStart {
		seed := seeder.Runner{Seeders: seeder.Defaults()}
		if err := seed.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Printf("[Seed] development data loaded")
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	var natsClient *messaging.NATSClient
	if cfg.NATS.URL != "" {
		natsCfg := messaging.DefaultNATSConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.Name = cfg.App.AppName
		natsClient, err = messaging.NewNATSClient(natsCfg, logger)
		if err != nil {
			logger.Printf("[NATS] unavailable, notifications degrade to WebSocket only: %v", err)
			natsClient = nil
		}
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    redisCache,
		NATS:     natsClient,
		Hub:      hub,
		Notifier: notify.NewFanOut(natsClient, hub),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.NATS != nil {
		c.NATS.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
