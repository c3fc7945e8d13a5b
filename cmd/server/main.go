package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"nautilus/internal/app/di"
	"nautilus/internal/app/router"
	stockhandler "nautilus/internal/feature/stock/transport/handler"
	stockusecase "nautilus/internal/feature/stock/usecase"
	symbollistadapters "nautilus/internal/feature/symbollist/adapters"
	symbollisthandler "nautilus/internal/feature/symbollist/transport/handler"
	symbollistusecase "nautilus/internal/feature/symbollist/usecase"
	infradb "nautilus/internal/platform/db"
	"nautilus/internal/platform/http/handler"
	jwtmw "nautilus/internal/platform/jwt"
	infraredis "nautilus/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Market, wrapped with the Redis cache
	market, err := di.NewMarket(di.LoadMarketConfig(), db, rdb)
	if err != nil {
		slog.Error("failed to build market", "error", err)
		os.Exit(1)
	}

	// Usecase
	stockUC := stockusecase.NewStockUsecase(market, market)
	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))

	// Handler
	stockH := stockhandler.NewStockHandler(stockUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)
	ready := handler.Ready(2*time.Second, map[string]handler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": redisCheck(rdb),
	})

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Stock routes are public.")
	}
	r := router.NewRouter(stockH, symbolH, ready, secret)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// redisCheck returns nil (reported as disabled) when running without cache.
func redisCheck(rdb *redisv9.Client) handler.Check {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}
