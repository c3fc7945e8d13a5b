package entity

// Chart is the OHLC series of a ticker enriched with moving averages
// and volume direction, ready to be rendered by a charting client.
type Chart struct {
	Ticker Ticker
	Labels []string  // formatted bar times
	Bars   []Candle  // prices rounded to 2 decimals
	SMA50  []Average // 50 bar simple moving average
	SMA200 []Average // 200 bar simple moving average
	Volume []VolumeBar
}

// Average is one point of a moving average. Valid is false until the
// window holds enough bars.
type Average struct {
	Value float64
	Valid bool
}

// VolumeBar pairs the traded volume with the bar direction:
// 1 when the bar opened above its close, -1 otherwise.
type VolumeBar struct {
	Index     int
	Volume    int64
	Direction int
}

// CloseSeries is the close-only view of a ticker's history.
type CloseSeries struct {
	Ticker Ticker
	Closes []float64
}
