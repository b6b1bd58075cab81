package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/breynerciro/restaurante-app/internal/domain/reservation"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string

	// Caps bound daily reservation admissions.
	Caps reservation.Caps

	LogLevel  string
	LogFormat string

	// DevMode runs the API against the in-memory store instead of
	// Postgres.
	DevMode bool
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    envDefault("HTTP_ADDR", ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:    envDefault("LOG_LEVEL", "info"),
		LogFormat:   envDefault("LOG_FORMAT", "text"),
		DevMode:     strings.TrimSpace(os.Getenv("DEV_MODE")) == "1",
	}

	var err error
	cfg.Caps.PerRestaurantDaily, err = envInt("PER_RESTAURANT_DAILY_CAP", reservation.DefaultPerRestaurantDailyCap)
	if err != nil {
		return cfg, err
	}
	cfg.Caps.GlobalDaily, err = envInt("GLOBAL_DAILY_CAP", reservation.DefaultGlobalDailyCap)
	if err != nil {
		return cfg, err
	}

	if !cfg.DevMode && cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required unless DEV_MODE=1")
	}
	return cfg, nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func envInt(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", k, v)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1 (got %d)", k, n)
	}
	return n, nil
}
