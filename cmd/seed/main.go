package main

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/config"
	"sheba-admin/internal/db"
	"sheba-admin/internal/logging"
	"sheba-admin/internal/model"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Env, cfg.LogLevel)
	log.Info().Msg("Starting seed script...")

	var opts seed.Options
	if err := env.Parse(&opts); err != nil {
		log.Fatal().Err(err).Msg("parse seed options")
	}

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	auditLog := audit.NewLog(
		repository.NewStore[model.ActivityLog](gormDB),
		repository.NewStore[model.SystemLog](gormDB),
	)
	defer auditLog.Close()

	res, err := seed.New(gormDB, auditLog).Run(context.Background(), opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed database")
		return
	}

	log.Info().
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Str("admin", opts.AdminUsername).
		Msg("Seed completed successfully")
}
