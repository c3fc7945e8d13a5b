// Command ingest copies price history into the candle store and maintains
// the watchlist.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"nautilus/internal/app/di"
	stockadapters "nautilus/internal/feature/stock/adapters"
	"nautilus/internal/feature/stock/usecase"
	symbollistadapters "nautilus/internal/feature/symbollist/adapters"
	infradb "nautilus/internal/platform/db"
	"nautilus/internal/platform/cache"
	infraredis "nautilus/internal/platform/redis"
	"nautilus/internal/shared/ratelimiter"
)

const (
	defaultRateLimit = 30
	runTimeout       = 30 * time.Minute
)

// app holds the connections shared by every subcommand.
type app struct {
	db      *gorm.DB
	rdb     *redisv9.Client
	ingest  *usecase.IngestUsecase
	symbols interface {
		ListActiveCodes(ctx context.Context) ([]string, error)
	}
}

func newApp() (*app, error) {
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		return nil, err
	}

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Cached history will not be invalidated.", "error", err)
	} else {
		rdb = tmp
	}

	limit := defaultRateLimit
	if v, err := strconv.Atoi(os.Getenv("INGEST_RATE_LIMIT")); err == nil && v > 0 {
		limit = v
	}

	candles := cache.NewInvalidatingCandleRepository(rdb, stockadapters.NewCandleRepository(db), os.Getenv("MARKET_CACHE_NAMESPACE"))
	return &app{
		db:      db,
		rdb:     rdb,
		ingest:  usecase.NewIngestUsecase(di.NewYahooMarket(), candles, ratelimiter.NewRateLimiter(limit, time.Minute)),
		symbols: symbollistadapters.NewSymbolRepository(db),
	}, nil
}

func (a *app) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// ingestWatchlist fetches every active symbol once.
func (a *app) ingestWatchlist(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	codes, err := a.symbols.ListActiveCodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load symbols: %w", err)
	}
	if len(codes) == 0 {
		slog.Warn("watchlist is empty, nothing to ingest")
		return nil
	}
	return a.ingest.IngestAll(ctx, codes)
}

// withApp opens the app for the duration of a subcommand.
func withApp(fn func(ctx context.Context, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), a)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ingest",
		Short:         "Load price history into the candle store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newCSVCmd(), newScheduleCmd(), newSymbolCmd())
	return root
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("ingest failed", "error", err)
		stop()
		os.Exit(1)
	}
}
