// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	stockadapters "nautilus/internal/feature/stock/adapters"
	"nautilus/internal/feature/stock/adapters/twelvedata"
	"nautilus/internal/feature/stock/adapters/yahoo"
	symboladapters "nautilus/internal/feature/symbollist/adapters"
	"nautilus/internal/platform/cache"
	platformhttp "nautilus/internal/platform/http"
)

const (
	// SourceYahoo serves live history from Yahoo Finance.
	SourceYahoo = "yahoo"
	// SourceDB serves ingested history from the candles table.
	SourceDB = "db"
	// SourceTwelveData serves live history from Twelve Data. Symbols are
	// still resolved through Yahoo search.
	SourceTwelveData = "twelvedata"

	defaultLiveTTL = 15 * time.Minute
)

// MarketConfig selects where the stock API reads history from.
type MarketConfig struct {
	Source         string
	CacheTTL       time.Duration // 0 picks a per-source default
	CacheNamespace string
	Timezone       string // exchange zone of stored bars, db source only
}

// LoadMarketConfig reads MARKET_SOURCE, MARKET_CACHE_TTL, MARKET_CACHE_NAMESPACE
// and MARKET_TIMEZONE.
func LoadMarketConfig() MarketConfig {
	cfg := MarketConfig{
		Source:         os.Getenv("MARKET_SOURCE"),
		CacheNamespace: os.Getenv("MARKET_CACHE_NAMESPACE"),
		Timezone:       os.Getenv("MARKET_TIMEZONE"),
	}
	if cfg.Source == "" {
		cfg.Source = SourceYahoo
	}
	if d, err := time.ParseDuration(os.Getenv("MARKET_CACHE_TTL")); err == nil && d > 0 {
		cfg.CacheTTL = d
	}
	return cfg
}

// NewYahooMarket creates a fully configured YahooMarket with HTTP client.
func NewYahooMarket() *yahoo.YahooMarket {
	cfg := yahoo.LoadConfig()
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooMarket(cfg, httpClient)
}

// NewTwelveDataMarket creates a TwelveDataMarket configured from the environment.
func NewTwelveDataMarket() *twelvedata.TwelveDataMarket {
	cfg := twelvedata.LoadConfig()
	return twelvedata.NewTwelveDataMarket(cfg, platformhttp.NewHTTPClient(cfg.Timeout))
}

// NewMarket builds the market and symbol resolver for cfg.Source and wraps
// them with the Redis cache. A nil rdb disables caching.
func NewMarket(cfg MarketConfig, db *gorm.DB, rdb *redis.Client) (*cache.CachingMarketRepository, error) {
	ttl := cfg.CacheTTL
	switch cfg.Source {
	case SourceYahoo:
		if ttl == 0 {
			ttl = defaultLiveTTL
		}
		m := NewYahooMarket()
		return cache.NewCachingMarketRepository(rdb, ttl, m, m, cfg.CacheNamespace), nil
	case SourceTwelveData:
		if ttl == 0 {
			ttl = defaultLiveTTL
		}
		return cache.NewCachingMarketRepository(rdb, ttl, NewTwelveDataMarket(), NewYahooMarket(), cfg.CacheNamespace), nil
	case SourceDB:
		if db == nil {
			return nil, fmt.Errorf("market source %q needs a database", SourceDB)
		}
		m := stockadapters.NewStoredMarket(stockadapters.NewCandleRepository(db), symboladapters.NewSymbolRepository(db))
		if cfg.Timezone != "" {
			loc, err := time.LoadLocation(cfg.Timezone)
			if err != nil {
				return nil, fmt.Errorf("MARKET_TIMEZONE: %w", err)
			}
			m.WithLocation(loc)
		}
		repo := cache.NewCachingMarketRepository(rdb, ttl, m, m, cfg.CacheNamespace)
		if ttl == 0 {
			// stored daily bars only change after the next ingest
			repo.WithTTLFunc(cache.TimeUntilSettlement)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported MARKET_SOURCE %q", cfg.Source)
	}
}
