package usecase

import (
	"context"
	"errors"
	"time"

	"nautilus/internal/feature/stock/domain/entity"
)

var errMarketAPI = errors.New("market API error")

// mockMarketRepository is a mock implementation of MarketRepository.
type mockMarketRepository struct {
	GetHistoryFunc  func(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error)
	GetHistoryCalls []string
}

func (m *mockMarketRepository) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	m.GetHistoryCalls = append(m.GetHistoryCalls, symbol+":"+period.Code)
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, symbol, period)
	}
	return nil, errors.New("GetHistoryFunc is not implemented")
}

// mockSymbolResolver is a mock implementation of SymbolResolver.
type mockSymbolResolver struct {
	ResolveFunc  func(ctx context.Context, query string) (entity.Ticker, error)
	ResolveCalls int
}

func (m *mockSymbolResolver) Resolve(ctx context.Context, query string) (entity.Ticker, error) {
	m.ResolveCalls++
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, query)
	}
	return entity.Ticker{Symbol: query, Name: query}, nil
}

// mockCandleRepository is a mock implementation of CandleRepository.
type mockCandleRepository struct {
	UpsertBatchFunc func(ctx context.Context, candles []entity.Candle) error
	Stored          []entity.Candle
}

func (m *mockCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if m.UpsertBatchFunc != nil {
		if err := m.UpsertBatchFunc(ctx, candles); err != nil {
			return err
		}
	}
	m.Stored = append(m.Stored, candles...)
	return nil
}

// mockRateLimiter returns immediately and counts calls.
type mockRateLimiter struct {
	WaitIfNeededCalls int
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.WaitIfNeededCalls++
}

// dailyCandles builds one candle per day starting at 2024-01-01 UTC.
func dailyCandles(closes ...float64) []entity.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.Candle, len(closes))
	for i, c := range closes {
		out[i] = entity.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: int64(1000 + i),
		}
	}
	return out
}
