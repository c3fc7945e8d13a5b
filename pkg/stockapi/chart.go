package stockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ChartColumns names the values of each ChartResponse.Data row.
var ChartColumns = []string{"Open", "Close", "Low", "High"}

// ChartResponse is the body of GET /stock/:id.
type ChartResponse struct {
	Name    string       `json:"name"`
	Ticker  string       `json:"ticker"`
	Columns []string     `json:"columns"`
	Index   []string     `json:"index"`
	Data    [][4]float64 `json:"data"`
	SMA50   []Average    `json:"50DSMA"`
	SMA200  []Average    `json:"200DSMA"`
	Volume  [][3]int64   `json:"volume"`
}

// Average is a moving average point. It encodes as "" until the window is full.
type Average struct {
	Value float64
	Valid bool
}

// MarshalJSON implements json.Marshaler.
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Average) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte(`""`)) || bytes.Equal(b, []byte("null")) {
		*a = Average{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("average: %w", err)
	}
	*a = Average{Value: v, Valid: true}
	return nil
}

// CloseResponse is the body of GET /stock/:id/close.
type CloseResponse struct {
	Name   string    `json:"name"`
	Ticker string    `json:"ticker"`
	Data   []float64 `json:"data"`
}

// ErrorResponse is returned with 4xx/5xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
