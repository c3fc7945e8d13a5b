// Package redis opens the Redis client used by the market cache.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Disabled skips Redis entirely and the service runs without cache.
	Disabled bool
}

// Addr returns host:port.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig reads REDIS_* environment variables.
func LoadConfig() Config {
	cfg := Config{
		Host:     getenv("REDIS_HOST", "localhost"),
		Port:     getenv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		Disabled: os.Getenv("REDIS_DISABLED") == "true",
	}
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil && v >= 0 {
		cfg.DB = v
	}
	return cfg
}

// NewRedisClient connects and pings Redis. Callers treat an error as
// "run without cache".
func NewRedisClient(cfg Config) (*redis.Client, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr(), "db", cfg.DB)
	return rdb, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
