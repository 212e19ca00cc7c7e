package main

import (
	"context"
	"time"

	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/db"
	"trip-route-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadDotEnv()
	obs.SetupLogger(config.Get("LOG_FORMAT", "console"), config.Get("DEBUG", "") == "YES")

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL, db.DefaultPoolOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	defer sqlDB.Close()

	log.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("Schema ready.")
}
