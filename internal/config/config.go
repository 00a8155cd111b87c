package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	DatasetPath     string
	ForecastEngine  string
	ForecastHorizon int
	ForecastTimeout time.Duration
	RefreshInterval time.Duration
	LogLevel        string
	LogFormat       string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatasetPath:    getEnv("DATASET_PATH", "amazon_reviews.csv"),
		ForecastEngine: getEnv("FORECAST_ENGINE", "holt"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	horizon, err := getEnvInt("FORECAST_HORIZON", 12)
	if err != nil {
		return nil, err
	}
	if horizon < 1 {
		return nil, fmt.Errorf("FORECAST_HORIZON must be at least 1, got %d", horizon)
	}
	cfg.ForecastHorizon = horizon

	timeout, err := getEnvDuration("FORECAST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("FORECAST_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.ForecastTimeout = timeout

	// Zero disables the background refresher; lazy per-request init is the
	// default mode of operation.
	refresh, err := getEnvDuration("REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	if refresh < 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", refresh)
	}
	cfg.RefreshInterval = refresh

	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("DATASET_PATH is required")
	}
	switch cfg.ForecastEngine {
	case "holt", "decompose":
	default:
		return nil, fmt.Errorf("FORECAST_ENGINE must be 'holt' or 'decompose', got %q", cfg.ForecastEngine)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 30s, 5m): %w", key, err)
	}
	return d, nil
}
