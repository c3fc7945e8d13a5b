package usecase

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"nautilus/internal/feature/stock/domain/entity"
)

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// SimpleMovingAverage returns the rolling mean of closes over window bars,
// rounded to 2 decimals. Points before the window fills are left invalid.
func SimpleMovingAverage(closes []float64, window int) []entity.Average {
	out := make([]entity.Average, len(closes))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		mean, err := stats.Mean(closes[i-window+1 : i+1])
		if err != nil {
			continue
		}
		out[i] = entity.Average{Value: round2(mean), Valid: true}
	}
	return out
}

// volumeBars tags each bar's volume with 1 when it opened above its close, -1 otherwise.
func volumeBars(candles []entity.Candle) []entity.VolumeBar {
	out := make([]entity.VolumeBar, len(candles))
	for i, c := range candles {
		dir := -1
		if c.Open > c.Close {
			dir = 1
		}
		out[i] = entity.VolumeBar{Index: i, Volume: c.Volume, Direction: dir}
	}
	return out
}

// movement measures the change from one close to a later one.
// Unchanged prices count as a drop.
func movement(from, to float64) entity.Movement {
	dir := entity.DirectionDrop
	if to > from {
		dir = entity.DirectionRise
	}
	if from == 0 {
		return entity.Movement{Direction: dir}
	}
	return entity.Movement{Direction: dir, Percent: round2(math.Abs(from-to) / from * 100)}
}
