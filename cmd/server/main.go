package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/planner"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/db"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, the plan-route service) behind
// ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	obs.SetupLogger(cfg.LogFormat, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo ports.TripRepository
	if cfg.DatabaseURL != "" {
		sqlDB, err := openTripStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("trip store unavailable")
		}
		defer sqlDB.Close()
		repo = repositories.NewPostgresTripRepository(sqlDB)
	} else {
		log.Warn().Msg("DATABASE_URL not set, trips will not be stored")
	}

	var planCache ports.PlanCache
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("plan cache unavailable")
		}
		defer client.Close()
		planCache = cache.NewRedisPlanCache(client, cfg.PlanCacheTTL)
	}

	client, err := planner.NewClient(cfg.PlannerBaseURL, cfg.PlannerTimeout, planCache)
	if err != nil {
		log.Fatal().Err(err).Msg("plan-route client")
	}

	router := api.NewRouter(client, repo)

	// WriteTimeout leaves room for a slow upstream plan plus its retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PlannerTimeout*4 + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Str("planner", cfg.PlannerBaseURL).
		Bool("store", repo != nil).
		Bool("cache", planCache != nil).
		Msg("Server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func openTripStore(ctx context.Context, databaseURL string) (*sql.DB, error) {
	sqlDB, err := db.Open(ctx, databaseURL, db.DefaultPoolOptions)
	if err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}
