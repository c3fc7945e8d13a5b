package usecase

import "nautilus/internal/feature/stock/domain/entity"

const (
	dropFactor = 0.94
	riseFactor = 1.06

	// follow-up horizons in trading days
	oneMonthBars    = 21
	threeMonthsBars = 63
	halfYearBars    = 126
)

// detectDirection walks back from the latest close and reports which 6%
// band was crossed first: a close above current*1.06 means the price has
// since dropped, a close below current*0.94 means it has risen.
func detectDirection(closes []float64) entity.Direction {
	if len(closes) == 0 {
		return entity.DirectionNone
	}
	current := closes[len(closes)-1]
	highStop := current * riseFactor
	lowStop := current * dropFactor
	for i := len(closes) - 1; i >= 0; i-- {
		switch {
		case closes[i] > highStop:
			return entity.DirectionDrop
		case closes[i] < lowStop:
			return entity.DirectionRise
		}
	}
	return entity.DirectionNone
}

// findDrops returns the indexes where the close fell 6% below the running high.
// The high restarts from each detected bar.
func findDrops(closes []float64) []int {
	if len(closes) == 0 {
		return nil
	}
	var out []int
	high := closes[0]
	stop := high * dropFactor
	for i, c := range closes {
		if high < c {
			high = c
			stop = high * dropFactor
		}
		if c < stop {
			out = append(out, i)
			high = c
			stop = high * dropFactor
		}
	}
	return out
}

// findRises returns the indexes where the close rose 6% above the running low.
// The low restarts from each detected bar.
func findRises(closes []float64) []int {
	if len(closes) == 0 {
		return nil
	}
	var out []int
	low := closes[0]
	stop := low * riseFactor
	for i, c := range closes {
		if low > c {
			low = c
			stop = low * riseFactor
		}
		if c > stop {
			out = append(out, i)
			low = c
			stop = low * riseFactor
		}
	}
	return out
}

// analyzeSignals measures the move 1, 3 and 6 months after each index.
func analyzeSignals(indexes []int, candles []entity.Candle) []entity.Signal {
	out := make([]entity.Signal, 0, len(indexes))
	for _, idx := range indexes {
		base := candles[idx].Close
		out = append(out, entity.Signal{
			Date:        candles[idx].Time,
			OneMonth:    movementAfter(candles, idx, oneMonthBars, base),
			ThreeMonths: movementAfter(candles, idx, threeMonthsBars, base),
			HalfYear:    movementAfter(candles, idx, halfYearBars, base),
		})
	}
	return out
}

func movementAfter(candles []entity.Candle, idx, bars int, base float64) entity.Movement {
	later := idx + bars
	if later >= len(candles) {
		return entity.Movement{}
	}
	return movement(base, candles[later].Close)
}

// DetectSignals finds every 6% move in the direction of the most recent
// trend and reports how the price developed afterwards.
func DetectSignals(candles []entity.Candle) []entity.Signal {
	closes := entity.Closes(candles)
	var indexes []int
	switch detectDirection(closes) {
	case entity.DirectionDrop:
		indexes = findDrops(closes)
	case entity.DirectionRise:
		indexes = findRises(closes)
	default:
		return nil
	}
	if len(indexes) == 0 {
		return nil
	}
	return analyzeSignals(indexes, candles)
}
