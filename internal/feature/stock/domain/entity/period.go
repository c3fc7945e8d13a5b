package entity

import (
	"strings"
	"time"
)

const (
	layoutDay    = "2006-01-02"
	layoutMinute = "2006-01-02 15:04"
)

// Period describes a history window requested by clients ("5D", "1Y", ...)
// together with the bar size used to sample it.
type Period struct {
	Code        string // canonical client code, e.g. "60D"
	Range       string // upstream range parameter, e.g. "60d"
	BarSize     string // upstream bar size, e.g. "60m"
	Interval    string // stored candle interval, e.g. "60min"
	LabelLayout string // time layout used for chart labels
}

// Only 5D and 60D are sampled intraday; every other range uses daily bars.
var periods = map[string]Period{
	"5D":  {Code: "5D", Range: "5d", BarSize: "5m", Interval: "5min", LabelLayout: layoutMinute},
	"60D": {Code: "60D", Range: "60d", BarSize: "60m", Interval: "60min", LabelLayout: layoutMinute},
	"1D":  daily("1D", "1d"),
	"1MO": daily("1MO", "1mo"),
	"3MO": daily("3MO", "3mo"),
	"6MO": daily("6MO", "6mo"),
	"YTD": daily("YTD", "ytd"),
	"1Y":  daily("1Y", "1y"),
	"2Y":  daily("2Y", "2y"),
	"5Y":  daily("5Y", "5y"),
	"10Y": daily("10Y", "10y"),
	"MAX": daily("MAX", "max"),
}

// epoch is where MAX starts; no listed history predates it.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

func daily(code, rng string) Period {
	return Period{Code: code, Range: rng, BarSize: "1d", Interval: "1day", LabelLayout: layoutDay}
}

// LookupPeriod returns the Period for a client code. Codes are case-insensitive.
func LookupPeriod(code string) (Period, bool) {
	p, ok := periods[strings.ToUpper(strings.TrimSpace(code))]
	return p, ok
}

// Since returns the first instant covered by the period when evaluated at now.
func (p Period) Since(now time.Time) time.Time {
	switch p.Code {
	case "1D":
		return now.AddDate(0, 0, -1)
	case "5D":
		return now.AddDate(0, 0, -5)
	case "60D":
		return now.AddDate(0, 0, -60)
	case "1MO":
		return now.AddDate(0, -1, 0)
	case "3MO":
		return now.AddDate(0, -3, 0)
	case "6MO":
		return now.AddDate(0, -6, 0)
	case "YTD":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case "1Y":
		return now.AddDate(-1, 0, 0)
	case "5Y":
		return now.AddDate(-5, 0, 0)
	case "10Y":
		return now.AddDate(-10, 0, 0)
	case "MAX":
		return epoch.In(now.Location())
	default:
		return now.AddDate(-2, 0, 0)
	}
}
