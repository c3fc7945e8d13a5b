package usecase

import (
	"context"
	"fmt"
	"strings"

	"nautilus/internal/feature/stock/domain/entity"
)

const (
	// DefaultInterval is used when the client sends no interval.
	DefaultInterval = "1Y"
	// SignalInterval is the history window scanned for signals.
	SignalInterval = "2Y"

	sma50Window  = 50
	sma200Window = 200
)

// MarketRepository abstracts the source of price history.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetHistory returns the bars of symbol for the period, oldest first.
	GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error)
}

// SymbolResolver maps a ticker or company name to a listed instrument.
type SymbolResolver interface {
	// Resolve returns ErrSymbolNotFound when nothing matches.
	Resolve(ctx context.Context, query string) (entity.Ticker, error)
}

// StockUsecase serves chart, close and signal views of a ticker's history.
type StockUsecase struct {
	market   MarketRepository
	resolver SymbolResolver
}

// NewStockUsecase creates a StockUsecase backed by the given market and resolver.
func NewStockUsecase(market MarketRepository, resolver SymbolResolver) *StockUsecase {
	return &StockUsecase{market: market, resolver: resolver}
}

// ParseInterval maps a client interval code to a Period.
func ParseInterval(code string) (entity.Period, error) {
	if strings.TrimSpace(code) == "" {
		code = DefaultInterval
	}
	p, ok := entity.LookupPeriod(code)
	if !ok {
		return entity.Period{}, fmt.Errorf("%w: %q", ErrInvalidInterval, code)
	}
	return p, nil
}

// history resolves id and loads its bars for the interval.
func (u *StockUsecase) history(ctx context.Context, id, interval string) (entity.Ticker, entity.Period, []entity.Candle, error) {
	period, err := ParseInterval(interval)
	if err != nil {
		return entity.Ticker{}, entity.Period{}, nil, err
	}
	if strings.TrimSpace(id) == "" {
		return entity.Ticker{}, entity.Period{}, nil, ErrSymbolNotFound
	}

	ticker, err := u.resolver.Resolve(ctx, strings.TrimSpace(id))
	if err != nil {
		return entity.Ticker{}, entity.Period{}, nil, err
	}

	candles, err := u.market.GetHistory(ctx, ticker.Symbol, period)
	if err != nil {
		return entity.Ticker{}, entity.Period{}, nil, err
	}
	if len(candles) == 0 {
		return entity.Ticker{}, entity.Period{}, nil, fmt.Errorf("%w: %s", ErrNoData, ticker.Symbol)
	}
	return ticker, period, candles, nil
}

// GetChart returns the OHLC chart of id over the interval with 50/200 bar
// moving averages and volume direction.
func (u *StockUsecase) GetChart(ctx context.Context, id, interval string) (*entity.Chart, error) {
	ticker, period, candles, err := u.history(ctx, id, interval)
	if err != nil {
		return nil, err
	}

	closes := entity.Closes(candles)
	chart := &entity.Chart{
		Ticker: ticker,
		Labels: make([]string, len(candles)),
		Bars:   make([]entity.Candle, len(candles)),
		SMA50:  SimpleMovingAverage(closes, sma50Window),
		SMA200: SimpleMovingAverage(closes, sma200Window),
		Volume: volumeBars(candles),
	}
	for i, c := range candles {
		chart.Labels[i] = c.Time.Format(period.LabelLayout)
		c.Open = round2(c.Open)
		c.High = round2(c.High)
		c.Low = round2(c.Low)
		c.Close = round2(c.Close)
		chart.Bars[i] = c
	}
	return chart, nil
}

// GetClose returns only the closing prices of id over the interval.
func (u *StockUsecase) GetClose(ctx context.Context, id, interval string) (*entity.CloseSeries, error) {
	ticker, _, candles, err := u.history(ctx, id, interval)
	if err != nil {
		return nil, err
	}
	closes := entity.Closes(candles)
	for i := range closes {
		closes[i] = round2(closes[i])
	}
	return &entity.CloseSeries{Ticker: ticker, Closes: closes}, nil
}

// GetSignals scans two years of daily closes of the ticker id for 6% moves.
// id is used as the ticker symbol without lookup.
func (u *StockUsecase) GetSignals(ctx context.Context, id string) ([]entity.Signal, error) {
	symbol := strings.TrimSpace(id)
	if symbol == "" {
		return nil, ErrSymbolNotFound
	}
	period, err := ParseInterval(SignalInterval)
	if err != nil {
		return nil, err
	}
	candles, err := u.market.GetHistory(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return DetectSignals(candles), nil
}
