package stockclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	path     string
	rawQuery string
	header   http.Header
}

type recorded struct {
	mu   sync.Mutex
	last request
}

func (r *recorded) get() request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// newServer answers every request with status and body and records the last request.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorded, *int32) {
	t.Helper()
	rec := &recorded{}
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		rec.mu.Lock()
		rec.last = request{path: r.URL.EscapedPath(), rawQuery: r.URL.RawQuery, header: r.Header.Clone()}
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec, &hits
}

func newClient(srv *httptest.Server, cfg Config) *Client {
	cfg.BaseURL = srv.URL
	return New(cfg, srv.Client())
}

func TestGetStock(t *testing.T) {
	t.Parallel()

	srv, rec, hits := newServer(t, http.StatusOK, `{"prices":[1,2,3]}`)
	c := newClient(srv, Config{})

	got, err := c.GetStock(context.Background(), "AAPL", "1d")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"prices": []any{1.0, 2.0, 3.0}}, got)
	assert.Equal(t, "/stock/AAPL", rec.get().path)
	assert.Equal(t, "interval=1d", rec.get().rawQuery)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestGetCloseDataStock(t *testing.T) {
	t.Parallel()

	srv, rec, _ := newServer(t, http.StatusOK, `{"name":"Apple Inc. (AAPL)","ticker":"AAPL","data":[189.5,190.25]}`)
	c := newClient(srv, Config{})

	got, err := c.GetCloseDataStock(context.Background(), "AAPL", "5D")

	require.NoError(t, err)
	assert.Equal(t, "/stock/AAPL/close", rec.get().path)
	assert.Equal(t, "interval=5D", rec.get().rawQuery)
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "AAPL", m["ticker"])
	assert.Equal(t, []any{189.5, 190.25}, m["data"])
}

func TestGetSignals(t *testing.T) {
	t.Parallel()

	srv, rec, _ := newServer(t, http.StatusOK, `{"data":[]}`)
	c := newClient(srv, Config{})

	got, err := c.GetSignals(context.Background(), "MSFT")

	require.NoError(t, err)
	assert.Equal(t, "/stock/MSFT/signals", rec.get().path)
	assert.Empty(t, rec.get().rawQuery)
	assert.Equal(t, map[string]any{"data": []any{}}, got)
}

func TestGetStock_EscapesID(t *testing.T) {
	t.Parallel()

	srv, rec, _ := newServer(t, http.StatusOK, `{}`)
	c := newClient(srv, Config{})

	_, err := c.GetStock(context.Background(), "^GSPC", "1Y")

	require.NoError(t, err)
	assert.Equal(t, "/stock/%5EGSPC", rec.get().path)
}

func TestDefaultHeadersAndToken(t *testing.T) {
	t.Parallel()

	srv, rec, _ := newServer(t, http.StatusOK, `{}`)
	c := newClient(srv, Config{
		Headers: map[string]string{"X-Client": "dashboard"},
		Token:   "tok",
	})

	for _, call := range []func() (any, error){
		func() (any, error) { return c.GetStock(context.Background(), "AAPL", "1Y") },
		func() (any, error) { return c.GetCloseDataStock(context.Background(), "AAPL", "1Y") },
		func() (any, error) { return c.GetSignals(context.Background(), "AAPL") },
	} {
		_, err := call()
		require.NoError(t, err)
		assert.Equal(t, "dashboard", rec.get().header.Get("X-Client"))
		assert.Equal(t, "Bearer tok", rec.get().header.Get("Authorization"))
	}
}

func TestNon2xxReturnsHTTPError(t *testing.T) {
	t.Parallel()

	srv, _, hits := newServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
	c := newClient(srv, Config{})

	got, err := c.GetStock(context.Background(), "AAPL", "1Y")

	require.Error(t, err)
	assert.Nil(t, got)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusInternalServerError, herr.StatusCode)
	assert.JSONEq(t, `{"error":"boom"}`, string(herr.Body))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "must not retry")
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url, Timeout: time.Second}, nil)
	_, err := c.GetSignals(context.Background(), "AAPL")

	require.Error(t, err)
	var herr *HTTPError
	assert.False(t, errors.As(err, &herr))
}

func TestInvalidJSON(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, http.StatusOK, `<html>`)
	c := newClient(srv, Config{})

	_, err := c.GetStock(context.Background(), "AAPL", "1Y")

	require.Error(t, err)
}

func TestContextCanceled(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, http.StatusOK, `{}`)
	c := newClient(srv, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetStock(ctx, "AAPL", "1Y")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTypedHelpers(t *testing.T) {
	t.Parallel()

	t.Run("chart", func(t *testing.T) {
		t.Parallel()
		srv, _, _ := newServer(t, http.StatusOK, `{
			"name":"Apple Inc. (AAPL)","ticker":"AAPL",
			"columns":["Open","Close","Low","High"],
			"index":["2024-01-02","2024-01-03"],
			"data":[[1,2,0.5,2.5],[2,1,0.9,2.1]],
			"50DSMA":["",""],"200DSMA":["",""],
			"volume":[[0,100,-1],[1,200,1]]}`)
		got, err := newClient(srv, Config{}).GetStockChart(context.Background(), "AAPL", "1Y")

		require.NoError(t, err)
		assert.Equal(t, "AAPL", got.Ticker)
		assert.Len(t, got.Data, 2)
		assert.False(t, got.SMA50[0].Valid)
		assert.Equal(t, [3]int64{1, 200, 1}, got.Volume[1])
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()
		srv, _, _ := newServer(t, http.StatusOK, `{"name":"n","ticker":"T","data":[1.5]}`)
		got, err := newClient(srv, Config{}).GetCloseSeries(context.Background(), "T", "1Y")

		require.NoError(t, err)
		assert.Equal(t, []float64{1.5}, got.Data)
	})

	t.Run("signals", func(t *testing.T) {
		t.Parallel()
		srv, _, _ := newServer(t, http.StatusOK, `{"data":[{"Date":"01/02/2024","One Month":{"Rise":"5.0%"},"Three Months":{"Drop":"1.25%"},"Half Year":{}}]}`)
		got, err := newClient(srv, Config{}).GetSignalReport(context.Background(), "T")

		require.NoError(t, err)
		require.Len(t, got.Data, 1)
		assert.Equal(t, "01/02/2024", got.Data[0].Date)
		assert.Equal(t, "5.0%", got.Data[0].OneMonth.Rise)
		assert.Equal(t, "1.25%", got.Data[0].ThreeMonths.Drop)
		assert.Empty(t, got.Data[0].HalfYear.Rise)
	})

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		srv, _, _ := newServer(t, http.StatusBadRequest, `{"error":"bad interval"}`)
		got, err := newClient(srv, Config{}).GetStockChart(context.Background(), "T", "3W")

		var herr *HTTPError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, http.StatusBadRequest, herr.StatusCode)
		assert.Nil(t, got)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("STOCK_API_BASE_URL", "https://api.example.test")
	t.Setenv("STOCK_API_TOKEN", "abc")
	t.Setenv("STOCK_API_TIMEOUT", "3s")

	cfg := LoadConfig()

	assert.Equal(t, "https://api.example.test", cfg.BaseURL)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}
