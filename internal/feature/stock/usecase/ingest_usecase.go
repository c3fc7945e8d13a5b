package usecase

import (
	"context"
	"log/slog"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/shared/ratelimiter"
)

// ingestPeriods are fetched for every symbol so the stored market can
// answer each client interval.
var ingestPeriods = []string{"2Y", "60D", "5D"}

// CandleRepository persists price history.
type CandleRepository interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// IngestUsecase copies history from the upstream market into the candle store.
type IngestUsecase struct {
	market      MarketRepository
	candle      CandleRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(market MarketRepository, candle CandleRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, rateLimiter: rateLimiter}
}

// ingestOne fetches one symbol/period from the market and upserts it.
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, period entity.Period) (int, error) {
	cs, err := iu.market.GetHistory(ctx, symbol, period)
	if err != nil {
		return 0, err
	}
	return len(cs), iu.Import(ctx, symbol, period.Interval, cs)
}

// Import stamps candles with symbol and interval and stores them.
func (iu *IngestUsecase) Import(ctx context.Context, symbol, interval string, candles []entity.Candle) error {
	for i := range candles {
		candles[i].Symbol = symbol
		candles[i].Interval = interval
	}
	return iu.candle.UpsertBatch(ctx, candles)
}

// IngestAll fetches every ingest period for every symbol, waiting on the
// rate limiter between upstream calls. A failing symbol is logged and skipped.
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		for _, code := range ingestPeriods {
			if err := ctx.Err(); err != nil {
				return err
			}
			period, err := ParseInterval(code)
			if err != nil {
				return err
			}
			iu.rateLimiter.WaitIfNeeded()
			n, err := iu.ingestOne(ctx, s, period)
			if err != nil {
				slog.Error("failed to ingest data", "symbol", s, "interval", period.Interval, "error", err)
				continue
			}
			slog.Info("ingested candles", "symbol", s, "interval", period.Interval, "count", n)
		}
	}
	return nil
}
