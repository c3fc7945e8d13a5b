package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockStockUsecase is a mock implementation of StockUsecase.
type mockStockUsecase struct {
	GetChartFunc   func(ctx context.Context, id, interval string) (*entity.Chart, error)
	GetCloseFunc   func(ctx context.Context, id, interval string) (*entity.CloseSeries, error)
	GetSignalsFunc func(ctx context.Context, id string) ([]entity.Signal, error)
}

func (m *mockStockUsecase) GetChart(ctx context.Context, id, interval string) (*entity.Chart, error) {
	return m.GetChartFunc(ctx, id, interval)
}

func (m *mockStockUsecase) GetClose(ctx context.Context, id, interval string) (*entity.CloseSeries, error) {
	return m.GetCloseFunc(ctx, id, interval)
}

func (m *mockStockUsecase) GetSignals(ctx context.Context, id string) ([]entity.Signal, error) {
	return m.GetSignalsFunc(ctx, id)
}

func setupRouter(uc StockUsecase) *gin.Engine {
	h := NewStockHandler(uc)
	r := gin.New()
	r.GET("/stock/:id", h.GetStock)
	r.GET("/stock/:id/close", h.GetClose)
	r.GET("/stock/:id/signals", h.GetSignals)
	return r
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

var apple = entity.Ticker{Symbol: "AAPL", Name: "Apple Inc."}

func TestStockHandler_GetStock(t *testing.T) {
	t.Parallel()

	uc := &mockStockUsecase{
		GetChartFunc: func(_ context.Context, id, interval string) (*entity.Chart, error) {
			assert.Equal(t, "apple", id)
			assert.Equal(t, "YTD", interval)
			return &entity.Chart{
				Ticker: apple,
				Labels: []string{"2024-01-02", "2024-01-03"},
				Bars: []entity.Candle{
					{Open: 187.15, Close: 185.64, Low: 183.89, High: 188.44},
					{Open: 184.22, Close: 184.25, Low: 182.09, High: 185.88},
				},
				SMA50:  []entity.Average{{}, {Value: 184.95, Valid: true}},
				SMA200: []entity.Average{{}, {}},
				Volume: []entity.VolumeBar{
					{Index: 0, Volume: 82488700, Direction: 1},
					{Index: 1, Volume: 58414500, Direction: -1},
				},
			}, nil
		},
	}

	w := serve(setupRouter(uc), "/stock/apple?interval=YTD")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"name": "Apple Inc. (AAPL)",
		"ticker": "AAPL",
		"columns": ["Open","Close","Low","High"],
		"index": ["2024-01-02","2024-01-03"],
		"data": [[187.15,185.64,183.89,188.44],[184.22,184.25,182.09,185.88]],
		"50DSMA": ["",184.95],
		"200DSMA": ["",""],
		"volume": [[0,82488700,1],[1,58414500,-1]]
	}`, w.Body.String())
}

func TestStockHandler_GetClose(t *testing.T) {
	t.Parallel()

	uc := &mockStockUsecase{
		GetCloseFunc: func(_ context.Context, id, interval string) (*entity.CloseSeries, error) {
			assert.Equal(t, "AAPL", id)
			assert.Empty(t, interval)
			return &entity.CloseSeries{Ticker: apple, Closes: []float64{185.64, 184.25}}, nil
		},
	}

	w := serve(setupRouter(uc), "/stock/AAPL/close")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Apple Inc. (AAPL)","ticker":"AAPL","data":[185.64,184.25]}`, w.Body.String())
}

func TestStockHandler_GetSignals(t *testing.T) {
	t.Parallel()

	uc := &mockStockUsecase{
		GetSignalsFunc: func(_ context.Context, id string) ([]entity.Signal, error) {
			assert.Equal(t, "MSFT", id)
			return []entity.Signal{{
				Date:        time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC),
				OneMonth:    entity.Movement{Direction: entity.DirectionRise, Percent: 12.5},
				ThreeMonths: entity.Movement{Direction: entity.DirectionDrop, Percent: 0.3},
			}}, nil
		},
	}

	w := serve(setupRouter(uc), "/stock/MSFT/signals")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{
		"Date": "10/26/2023",
		"One Month": {"Rise": "12.5%"},
		"Three Months": {"Drop": "0.3%"},
		"Half Year": {}
	}]}`, w.Body.String())
}

func TestStockHandler_GetSignals_None(t *testing.T) {
	t.Parallel()

	uc := &mockStockUsecase{
		GetSignalsFunc: func(context.Context, string) ([]entity.Signal, error) { return nil, nil },
	}

	w := serve(setupRouter(uc), "/stock/MSFT/signals")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestStockHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "unknown symbol returns empty data",
			err:      fmt.Errorf("%w: %q", usecase.ErrSymbolNotFound, "zzz"),
			wantCode: http.StatusOK,
			wantBody: `{"data":[]}`,
		},
		{
			name:     "no history returns empty data",
			err:      usecase.ErrNoData,
			wantCode: http.StatusOK,
			wantBody: `{"data":[]}`,
		},
		{
			name:     "invalid interval",
			err:      fmt.Errorf("%w: %q", usecase.ErrInvalidInterval, "3W"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid interval: \"3W\""}`,
		},
		{
			name:     "upstream failure",
			err:      errors.New("yahoo http 503"),
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"yahoo http 503"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockStockUsecase{
				GetChartFunc: func(context.Context, string, string) (*entity.Chart, error) { return nil, tt.err },
				GetCloseFunc: func(context.Context, string, string) (*entity.CloseSeries, error) { return nil, tt.err },
				GetSignalsFunc: func(context.Context, string) ([]entity.Signal, error) {
					return nil, tt.err
				},
			}
			r := setupRouter(uc)

			for _, target := range []string{"/stock/zzz?interval=3W", "/stock/zzz/close?interval=3W", "/stock/zzz/signals"} {
				w := serve(r, target)
				assert.Equal(t, tt.wantCode, w.Code, target)
				assert.JSONEq(t, tt.wantBody, w.Body.String(), target)
			}
		})
	}
}

type fakeMarket struct {
	periods []string
}

func (f *fakeMarket) GetHistory(_ context.Context, symbol string, period entity.Period) ([]entity.Candle, error) {
	f.periods = append(f.periods, period.Code+"/"+period.Range+"/"+period.BarSize)
	return []entity.Candle{{Symbol: symbol, Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5}}, nil
}

func (f *fakeMarket) Resolve(_ context.Context, query string) (entity.Ticker, error) {
	return entity.Ticker{Symbol: query, Name: query}, nil
}

func TestStockHandler_GetStock_YahooPeriods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval   string
		wantPeriod string
	}{
		{interval: "1d", wantPeriod: "1D/1d/1d"},
		{interval: "5d", wantPeriod: "5D/5d/5m"},
		{interval: "1mo", wantPeriod: "1MO/1mo/1d"},
		{interval: "3mo", wantPeriod: "3MO/3mo/1d"},
		{interval: "6mo", wantPeriod: "6MO/6mo/1d"},
		{interval: "5y", wantPeriod: "5Y/5y/1d"},
		{interval: "10y", wantPeriod: "10Y/10y/1d"},
		{interval: "max", wantPeriod: "MAX/max/1d"},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			t.Parallel()
			m := &fakeMarket{}
			r := setupRouter(usecase.NewStockUsecase(m, m))

			w := serve(r, "/stock/AAPL?interval="+tt.interval)

			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"ticker":"AAPL"`)
			assert.Equal(t, []string{tt.wantPeriod}, m.periods)
		})
	}
}
