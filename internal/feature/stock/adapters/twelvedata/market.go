package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"nautilus/internal/feature/stock/adapters/twelvedata/dto"
	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/usecase"
)

// Twelve Data bar sizes keyed by stored candle interval.
var barSizes = map[string]string{
	"5min":  "5min",
	"60min": "1h",
	"1day":  "1day",
}

// TwelveDataMarket fetches price history from the Twelve Data time_series API.
type TwelveDataMarket struct {
	cfg    Config
	client *resty.Client
	now    func() time.Time
}

var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket creates a TwelveDataMarket that sends requests through httpClient.
func NewTwelveDataMarket(cfg Config, httpClient *http.Client) *TwelveDataMarket {
	c := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	return &TwelveDataMarket{cfg: cfg, client: c, now: time.Now}
}

// GetHistory returns the bars of symbol for the period, oldest first.
func (t *TwelveDataMarket) GetHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	bar, ok := barSizes[period.Interval]
	if !ok {
		return nil, fmt.Errorf("twelvedata: unsupported interval %q", period.Interval)
	}

	res, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":     symbol,
			"interval":   bar,
			"start_date": period.Since(t.now().UTC()).Format("2006-01-02 15:04:05"),
			"order":      "ASC",
			"timezone":   "Exchange",
			"apikey":     t.cfg.APIKey,
		}).
		Get("/time_series")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode())
	}

	var body dto.TimeSeriesResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if body.Status == "error" {
		if body.Code == http.StatusNotFound || body.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", usecase.ErrNoData, body.Message)
		}
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}
	return toCandles(symbol, period, body)
}

func toCandles(symbol string, period entity.Period, body dto.TimeSeriesResponse) ([]entity.Candle, error) {
	loc := time.UTC
	if body.Meta.ExchangeTimezone != "" {
		if l, err := time.LoadLocation(body.Meta.ExchangeTimezone); err == nil {
			loc = l
		}
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := toCandle(v, loc)
		if err != nil {
			return nil, err
		}
		c.Symbol = symbol
		c.Interval = period.Interval
		candles = append(candles, c)
	}
	return candles, nil
}

func toCandle(v dto.Value, loc *time.Location) (entity.Candle, error) {
	tm, err := time.ParseInLocation("2006-01-02 15:04:05", v.Datetime, loc)
	if err != nil {
		tm, err = time.ParseInLocation("2006-01-02", v.Datetime, loc)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}

	var c entity.Candle
	c.Time = tm
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", v.Open, &c.Open},
		{"high", v.High, &c.High},
		{"low", v.Low, &c.Low},
		{"close", v.Close, &c.Close},
	} {
		n, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = n
	}
	if v.Volume != "" {
		vol, err := strconv.ParseInt(v.Volume, 10, 64)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
		c.Volume = vol
	}
	return c, nil
}
