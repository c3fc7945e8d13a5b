package dto

import (
	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/pkg/stockapi"
)

type CloseResponse = stockapi.CloseResponse

// NewCloseResponse converts a close series into its wire form.
func NewCloseResponse(s *entity.CloseSeries) CloseResponse {
	data := s.Closes
	if data == nil {
		data = []float64{}
	}
	return CloseResponse{
		Name:   s.Ticker.DisplayName(),
		Ticker: s.Ticker.Symbol,
		Data:   data,
	}
}
