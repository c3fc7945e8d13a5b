package usecase

import "errors"

// ErrSymbolNotFound is returned when no watchlist entry matches a lookup.
var ErrSymbolNotFound = errors.New("symbol not found")
