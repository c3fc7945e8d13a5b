// Package entity defines the domain models for the stock feature.
package entity

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) data
// for a stock symbol at a specific bar interval.
type Candle struct {
	Symbol   string    // Ticker symbol (e.g., "AAPL", "^GSPC")
	Interval string    // Bar size (e.g., "1day", "60min", "5min")
	Time     time.Time // Start of the bar
	Open     float64   // Opening price
	High     float64   // Highest price during the bar
	Low      float64   // Lowest price during the bar
	Close    float64   // Closing price
	Volume   int64     // Trading volume
}

// Closes extracts the closing prices in series order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
