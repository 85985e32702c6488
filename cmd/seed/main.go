// Command seed creates the schema and loads the starter content into the
// configured database. It is safe to run repeatedly.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"govsite/internal/config"
	"govsite/internal/db"
	"govsite/internal/logging"
	"govsite/internal/repository"
	"govsite/internal/seed"
)

const seedTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Development())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting seed", zap.String("driver", cfg.DBDriver))

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.Migrate(gormDB, cfg.ResetDB, repository.Models()...); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations completed")

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	admin := seed.Admin{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Email: cfg.AdminEmail}
	res, err := seed.Apply(ctx, repository.NewGormStorage(gormDB), admin, logger)
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	logger.Info("seed completed",
		zap.Int("services_created", res.Services),
		zap.Int("news_created", res.News),
		zap.Int("users_created", res.Users),
	)
}
