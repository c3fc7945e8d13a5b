package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"nautilus/internal/feature/stock/adapters/yahoo/dto"
	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/usecase"
)

// YahooMarket fetches price history and resolves symbols through Yahoo Finance.
type YahooMarket struct {
	cfg    Config
	client *resty.Client
}

// Compile-time checks that YahooMarket serves both usecase ports.
var (
	_ usecase.MarketRepository = (*YahooMarket)(nil)
	_ usecase.SymbolResolver   = (*YahooMarket)(nil)
)

// NewYahooMarket creates a YahooMarket that sends requests through httpClient.
func NewYahooMarket(cfg Config, httpClient *http.Client) *YahooMarket {
	c := resty.NewWithClient(httpClient).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	return &YahooMarket{cfg: cfg, client: c}
}

// GetHistory returns the bars of symbol for the period, oldest first.
// Bars without a close are skipped.
func (y *YahooMarket) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	res, err := y.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    period.Range,
			"interval": period.BarSize,
		}).
		Get(strings.TrimRight(y.cfg.ChartBaseURL, "/") + "/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, err
	}

	var body dto.ChartResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		if res.IsError() {
			return nil, fmt.Errorf("yahoo http %d", res.StatusCode())
		}
		return nil, fmt.Errorf("yahoo decode chart: %w", err)
	}
	if e := body.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", usecase.ErrNoData, e.Description)
		}
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if res.IsError() {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode())
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	return toCandles(symbol, period, body.Chart.Result[0]), nil
}

func toCandles(symbol string, period entity.Period, r dto.ChartResult) []entity.Candle {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	loc := time.UTC
	if r.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(r.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	q := r.Indicators.Quote[0]
	out := make([]entity.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		c := at(q.Close, i)
		if c == nil {
			continue // no trades in this bar
		}
		out = append(out, entity.Candle{
			Symbol:   symbol,
			Interval: period.Interval,
			Time:     time.Unix(ts, 0).In(loc),
			Open:     valueOr(at(q.Open, i), *c),
			High:     valueOr(at(q.High, i), *c),
			Low:      valueOr(at(q.Low, i), *c),
			Close:    *c,
			Volume:   valueOr(at(q.Volume, i), 0),
		})
	}
	return out
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Resolve looks up a ticker or company name with the search endpoint and
// returns the best match.
func (y *YahooMarket) Resolve(ctx context.Context, query string) (entity.Ticker, error) {
	var body dto.SearchResponse
	res, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":            query,
			"quotes_count": "1",
			"country":      y.cfg.Country,
		}).
		SetResult(&body).
		ForceContentType("application/json").
		Get(strings.TrimRight(y.cfg.SearchBaseURL, "/") + "/v1/finance/search")
	if err != nil {
		return entity.Ticker{}, err
	}
	if res.IsError() {
		return entity.Ticker{}, fmt.Errorf("yahoo search http %d", res.StatusCode())
	}
	if len(body.Quotes) == 0 || body.Quotes[0].Symbol == "" {
		return entity.Ticker{}, fmt.Errorf("%w: %q", usecase.ErrSymbolNotFound, query)
	}

	q := body.Quotes[0]
	name := q.ShortName
	if name == "" {
		name = q.LongName
	}
	if name == "" {
		name = q.Symbol
	}
	return entity.Ticker{Symbol: q.Symbol, Name: name}, nil
}
