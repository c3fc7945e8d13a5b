// Package usecase implements the business logic for the stock feature.
package usecase

import "errors"

var (
	// ErrSymbolNotFound is returned when an identifier matches no listed instrument.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoData is returned when the market has no history for the requested window.
	ErrNoData = errors.New("no data for symbol")

	// ErrInvalidInterval is returned for interval codes that name no known period.
	ErrInvalidInterval = errors.New("invalid interval")
)
