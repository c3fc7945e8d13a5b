// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

import "nautilus/internal/feature/symbollist/domain/entity"

// SymbolItem is one watchlist entry as exposed to clients.
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSymbolList converts symbols into their public form. The result is never nil.
func NewSymbolList(symbols []entity.Symbol) []SymbolItem {
	out := make([]SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, SymbolItem{Code: s.Code, Name: s.Name})
	}
	return out
}

// ErrorResponse is returned when the watchlist cannot be read.
type ErrorResponse struct {
	Error string `json:"error"`
}
