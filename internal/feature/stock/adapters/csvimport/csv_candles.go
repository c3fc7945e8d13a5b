// Package csvimport reads price history exported as CSV.
//
// The first row is a header naming the columns time, open, high, low, close
// and volume in any order; unknown columns and empty lines are ignored.
package csvimport

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"nautilus/internal/feature/stock/domain/entity"
)

// CandleRow is one CSV line.
type CandleRow struct {
	Time   string  `csv:"time"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

// parseTime accepts the layouts above or unix seconds. Times without a
// zone are read in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).In(loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// ToEntity converts the row into a candle without symbol or interval.
func (r CandleRow) ToEntity(loc *time.Location) (entity.Candle, error) {
	t, err := parseTime(r.Time, loc)
	if err != nil {
		return entity.Candle{}, err
	}
	return entity.Candle{
		Time:   t,
		Open:   r.Open,
		High:   r.High,
		Low:    r.Low,
		Close:  r.Close,
		Volume: int64(r.Volume),
	}, nil
}

// Parse decodes CSV candles from r, oldest first. A nil loc means UTC.
func Parse(r io.Reader, loc *time.Location) ([]entity.Candle, error) {
	if loc == nil {
		loc = time.UTC
	}

	var rows []*CandleRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("csv decode: %w", err)
	}

	out := make([]entity.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := row.ToEntity(loc)
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		if c.Close <= 0 {
			return nil, fmt.Errorf("csv row %d: close must be positive", i+2)
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, loc *time.Location) ([]entity.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f, loc)
}
