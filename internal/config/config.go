package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the pipeline.
type Config struct {
	DatabaseURL   string
	SweepInterval time.Duration
	TelegramToken string // optional; empty disables the Telegram channel
	LogLevel      slog.Level
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SweepInterval: parseSweepInterval(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_SECONDS"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todoflow.db"
	}

	level, err := parseLogLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseSweepInterval(raw string) time.Duration {
	if raw == "" {
		return time.Minute
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Minute
	}
	return time.Duration(seconds) * time.Second
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", raw)
	}
}
