package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	LogLevel           string
	LogFormat          string
	RetrySchedule      string
	DefaultMaxAttempts int
}

// LoadConfig reads the configuration from the environment. Values in a .env
// file at path are loaded first without overriding variables already set; a
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	maxAttempts, err := envInt("DEFAULT_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, err
	}
	if maxAttempts < 1 {
		return Config{}, fmt.Errorf("DEFAULT_MAX_ATTEMPTS must be at least 1, got %d", maxAttempts)
	}

	return Config{
		HTTPPort:           env("HTTP_PORT", "8080"),
		DBHost:             env("DB_HOST", "localhost"),
		DBPort:             env("DB_PORT", "5432"),
		DBUser:             env("DB_USER", "postgres"),
		DBPassword:         env("DB_PASSWORD", ""),
		DBName:             env("DB_NAME", "shipping"),
		DBSslMode:          env("DB_SSLMODE", "disable"),
		LogLevel:           env("LOG_LEVEL", "info"),
		LogFormat:          env("LOG_FORMAT", "json"),
		RetrySchedule:      env("RETRY_SCHEDULE", ""),
		DefaultMaxAttempts: maxAttempts,
	}, nil
}

// DSN builds the key/value connection string understood by the postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
