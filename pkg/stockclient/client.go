// Package stockclient is a thin client for the stock service. Each call
// issues exactly one GET and returns the decoded JSON body unchanged.
package stockclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"

	platformhttp "nautilus/internal/platform/http"
	"nautilus/pkg/stockapi"
)

const (
	stockPath   = "/stock/{id}"
	closePath   = "/stock/{id}/close"
	signalsPath = "/stock/{id}/signals"
)

// Client calls the stock service. It is safe for concurrent use.
type Client struct {
	rc *resty.Client
}

// New creates a Client. A nil httpClient gets a pooled client with
// cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = platformhttp.NewHTTPClient(cfg.Timeout)
	}

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeaders(cfg.Headers).
		SetRetryCount(0)
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	return &Client{rc: rc}
}

// GetStock fetches the chart of id: GET /stock/{id}?interval=...
func (c *Client) GetStock(ctx context.Context, id, interval string) (any, error) {
	return c.getJSON(ctx, stockPath, id, map[string]string{"interval": interval})
}

// GetCloseDataStock fetches the closing prices of id:
// GET /stock/{id}/close?interval=...
func (c *Client) GetCloseDataStock(ctx context.Context, id, interval string) (any, error) {
	return c.getJSON(ctx, closePath, id, map[string]string{"interval": interval})
}

// GetSignals fetches the signal report of id: GET /stock/{id}/signals
func (c *Client) GetSignals(ctx context.Context, id string) (any, error) {
	return c.getJSON(ctx, signalsPath, id, nil)
}

// GetStockChart is GetStock decoded into the chart shape. When the service
// has no data for id the result has an empty Name and no rows.
func (c *Client) GetStockChart(ctx context.Context, id, interval string) (*stockapi.ChartResponse, error) {
	var out stockapi.ChartResponse
	if err := c.getInto(ctx, stockPath, id, map[string]string{"interval": interval}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCloseSeries is GetCloseDataStock decoded into the close shape.
func (c *Client) GetCloseSeries(ctx context.Context, id, interval string) (*stockapi.CloseResponse, error) {
	var out stockapi.CloseResponse
	if err := c.getInto(ctx, closePath, id, map[string]string{"interval": interval}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSignalReport is GetSignals decoded into the signal shape.
func (c *Client) GetSignalReport(ctx context.Context, id string) (*stockapi.SignalsResponse, error) {
	var out stockapi.SignalsResponse
	if err := c.getInto(ctx, signalsPath, id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path, id string, query map[string]string) (any, error) {
	var out any
	if err := c.getInto(ctx, path, id, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getInto performs one GET and decodes the body into out.
// id is escaped as a single path segment.
func (c *Client) getInto(ctx context.Context, path, id string, query map[string]string, out any) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &HTTPError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return json.Unmarshal(resp.Body(), out)
}
