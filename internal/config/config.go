package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the explicit runtime configuration of the service. It is built
// once in main and passed to the adapters that need it.
type Config struct {
	Port           string
	DatabaseURL    string
	PlannerBaseURL string
	PlannerTimeout time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PlanCacheTTL   time.Duration
	LogFormat      string
	Debug          bool
}

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment.
// DATABASE_URL and REDIS_ADDR may be empty; the server then runs without trip
// persistence or plan caching.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "8080"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		PlannerBaseURL: Get("PLANNER_BASE_URL", "http://localhost:8000"),
		RedisAddr:      Get("REDIS_ADDR", ""),
		RedisPassword:  Get("REDIS_PASSWORD", ""),
		LogFormat:      Get("LOG_FORMAT", "console"),
		Debug:          Get("DEBUG", "") == "YES",
	}

	var err error
	if cfg.PlannerTimeout, err = time.ParseDuration(Get("PLANNER_TIMEOUT", "30s")); err != nil {
		return Config{}, fmt.Errorf("load config: PLANNER_TIMEOUT: %w", err)
	}
	if cfg.PlanCacheTTL, err = time.ParseDuration(Get("PLAN_CACHE_TTL", "15m")); err != nil {
		return Config{}, fmt.Errorf("load config: PLAN_CACHE_TTL: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(Get("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("load config: REDIS_DB: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.PlannerBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PLANNER_BASE_URL %q must be an absolute URL", c.PlannerBaseURL)
	}
	if c.PlannerTimeout <= 0 {
		return errors.New("PLANNER_TIMEOUT must be positive")
	}
	if c.PlanCacheTTL < 0 {
		return errors.New("PLAN_CACHE_TTL must not be negative")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT %q must be numeric", c.Port)
	}
	return nil
}
