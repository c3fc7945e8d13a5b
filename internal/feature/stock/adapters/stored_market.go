package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/usecase"
	symbolentity "nautilus/internal/feature/symbollist/domain/entity"
	symbolusecase "nautilus/internal/feature/symbollist/usecase"
)

// CandleFinder reads stored history.
type CandleFinder interface {
	FindSince(ctx context.Context, symbol, interval string, since time.Time) ([]entity.Candle, error)
}

// SymbolFinder looks up watchlist symbols.
type SymbolFinder interface {
	FindByCodeOrName(ctx context.Context, query string) (*symbolentity.Symbol, error)
}

// DefaultExchangeZone is the zone stored bars are reported in unless
// WithLocation overrides it.
const DefaultExchangeZone = "America/New_York"

// StoredMarket serves history and symbol lookups from the database,
// for deployments that run on ingested data only.
type StoredMarket struct {
	candles CandleFinder
	symbols SymbolFinder
	loc     *time.Location
	now     func() time.Time
}

var (
	_ usecase.MarketRepository = (*StoredMarket)(nil)
	_ usecase.SymbolResolver   = (*StoredMarket)(nil)
)

// NewStoredMarket creates a StoredMarket.
func NewStoredMarket(candles CandleFinder, symbols SymbolFinder) *StoredMarket {
	loc, err := time.LoadLocation(DefaultExchangeZone)
	if err != nil {
		loc = time.UTC
	}
	return &StoredMarket{candles: candles, symbols: symbols, loc: loc, now: time.Now}
}

// WithLocation sets the exchange zone bar times are converted to.
func (m *StoredMarket) WithLocation(loc *time.Location) *StoredMarket {
	if loc != nil {
		m.loc = loc
	}
	return m
}

// GetHistory returns the stored bars of symbol that fall inside the period,
// with times in the exchange zone.
func (m *StoredMarket) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	candles, err := m.candles.FindSince(ctx, symbol, period.Interval, period.Since(m.now().In(m.loc)))
	if err != nil {
		return nil, err
	}
	for i := range candles {
		candles[i].Time = candles[i].Time.In(m.loc)
	}
	return candles, nil
}

// Resolve matches query against watchlist codes and names.
func (m *StoredMarket) Resolve(ctx context.Context, query string) (entity.Ticker, error) {
	s, err := m.symbols.FindByCodeOrName(ctx, query)
	if err != nil {
		if errors.Is(err, symbolusecase.ErrSymbolNotFound) {
			return entity.Ticker{}, fmt.Errorf("%w: %q", usecase.ErrSymbolNotFound, query)
		}
		return entity.Ticker{}, err
	}
	return entity.Ticker{Symbol: s.Code, Name: s.Name}, nil
}
