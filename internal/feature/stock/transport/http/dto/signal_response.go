package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/pkg/stockapi"
)

const signalDateLayout = "01/02/2006"

type (
	SignalsResponse = stockapi.SignalsResponse
	SignalItem      = stockapi.SignalItem
	Movement        = stockapi.Movement
)

// NewSignalsResponse converts detected signals into their wire form.
func NewSignalsResponse(signals []entity.Signal) SignalsResponse {
	out := SignalsResponse{Data: make([]SignalItem, 0, len(signals))}
	for _, s := range signals {
		out.Data = append(out.Data, SignalItem{
			Date:        s.Date.Format(signalDateLayout),
			OneMonth:    newMovement(s.OneMonth),
			ThreeMonths: newMovement(s.ThreeMonths),
			HalfYear:    newMovement(s.HalfYear),
		})
	}
	return out
}

func newMovement(m entity.Movement) Movement {
	if m.IsZero() {
		return Movement{}
	}
	pct := formatPercent(m.Percent)
	if m.Direction == entity.DirectionRise {
		return Movement{Rise: pct}
	}
	return Movement{Drop: pct}
}

// formatPercent rounds to 2 places and keeps at least one decimal, so 5
// becomes "5.0%" and 12.345 becomes "12.35%".
func formatPercent(p float64) string {
	s := decimal.NewFromFloat(p).Round(2).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
