// Package cache provides Redis caching decorators for market data ports.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/usecase"
)

const (
	defaultNamespace = "market"
	// intradayTTL bounds the lifetime of 5m/60m series, which change during the session.
	intradayTTL = 5 * time.Minute
)

// CachingMarketRepository decorates a MarketRepository and SymbolResolver
// with Redis caching. A nil client disables caching.
type CachingMarketRepository struct {
	market    usecase.MarketRepository
	resolver  usecase.SymbolResolver
	rdb       *redis.Client
	ttl       time.Duration
	ttlFunc   func() time.Duration
	namespace string
}

var (
	_ usecase.MarketRepository = (*CachingMarketRepository)(nil)
	_ usecase.SymbolResolver   = (*CachingMarketRepository)(nil)
)

// NewCachingMarketRepository wraps market and resolver.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "market".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, market usecase.MarketRepository, resolver usecase.SymbolResolver, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingMarketRepository{
		market:    market,
		resolver:  resolver,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// WithTTLFunc makes every write ask fn for its lifetime instead of using the
// fixed ttl. Non-positive results fall back to the fixed ttl.
func (c *CachingMarketRepository) WithTTLFunc(fn func() time.Duration) *CachingMarketRepository {
	c.ttlFunc = fn
	return c
}

// GetHistory returns cached bars when present, otherwise loads and caches them.
func (c *CachingMarketRepository) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.market.GetHistory(ctx, symbol, period)
	}

	key := historyKey(c.namespace, symbol, period.Code)
	var out []entity.Candle
	if c.load(ctx, key, &out) {
		return out, nil
	}

	out, err := c.market.GetHistory(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	// empty series are not cached so a late listing shows up on the next request
	if len(out) > 0 {
		c.store(ctx, key, out, c.historyTTL(period))
	}
	return out, nil
}

// Resolve returns the cached ticker for query when present, otherwise resolves and caches it.
func (c *CachingMarketRepository) Resolve(ctx context.Context, query string) (entity.Ticker, error) {
	if c.rdb == nil {
		return c.resolver.Resolve(ctx, query)
	}

	key := tickerKey(c.namespace, query)
	var t entity.Ticker
	if c.load(ctx, key, &t) {
		return t, nil
	}

	t, err := c.resolver.Resolve(ctx, query)
	if err != nil {
		return entity.Ticker{}, err
	}
	c.store(ctx, key, t, c.currentTTL())
	return t, nil
}

func (c *CachingMarketRepository) currentTTL() time.Duration {
	if c.ttlFunc != nil {
		if d := c.ttlFunc(); d > 0 {
			return d
		}
	}
	return c.ttl
}

func (c *CachingMarketRepository) historyTTL(p entity.Period) time.Duration {
	ttl := c.currentTTL()
	if p.BarSize != "1d" && ttl > intradayTTL {
		return intradayTTL
	}
	return ttl
}

// load decodes key into v. Corrupted entries are deleted.
func (c *CachingMarketRepository) load(ctx context.Context, key string, v any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key, best effort.
func (c *CachingMarketRepository) store(ctx context.Context, key string, v any, ttl time.Duration) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
}

// InvalidatingCandleRepository decorates a CandleRepository so that writes
// evict the cached history of the affected symbols.
type InvalidatingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	namespace string
}

var _ usecase.CandleRepository = (*InvalidatingCandleRepository)(nil)

// NewInvalidatingCandleRepository wraps inner. If namespace is empty, it uses "market".
func NewInvalidatingCandleRepository(rdb *redis.Client, inner usecase.CandleRepository, namespace string) *InvalidatingCandleRepository {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &InvalidatingCandleRepository{inner: inner, rdb: rdb, namespace: namespace}
}

// UpsertBatch stores candles and invalidates the cached history of each symbol.
func (r *InvalidatingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := r.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if r.rdb == nil || len(candles) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, cd := range candles {
		if _, ok := seen[cd.Symbol]; ok {
			continue
		}
		seen[cd.Symbol] = struct{}{}
		_ = deleteByPattern(ctx, r.rdb, historyKeyPrefix(r.namespace, cd.Symbol)+"*") // best effort
	}
	return nil
}

func historyKey(namespace, symbol, period string) string {
	return historyKeyPrefix(namespace, symbol) + safe(period)
}

func historyKeyPrefix(namespace, symbol string) string {
	return fmt.Sprintf("%s:history:%s:", namespace, safe(symbol))
}

func tickerKey(namespace, query string) string {
	return fmt.Sprintf("%s:ticker:%s", namespace, safe(strings.ToLower(strings.TrimSpace(query))))
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
