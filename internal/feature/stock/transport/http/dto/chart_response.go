package dto

import (
	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/pkg/stockapi"
)

type (
	ChartResponse = stockapi.ChartResponse
	Average       = stockapi.Average
)

// NewChartResponse converts a chart into its wire form.
func NewChartResponse(c *entity.Chart) ChartResponse {
	out := ChartResponse{
		Name:    c.Ticker.DisplayName(),
		Ticker:  c.Ticker.Symbol,
		Columns: stockapi.ChartColumns,
		Index:   c.Labels,
		Data:    make([][4]float64, len(c.Bars)),
		SMA50:   averages(c.SMA50),
		SMA200:  averages(c.SMA200),
		Volume:  make([][3]int64, len(c.Volume)),
	}
	for i, b := range c.Bars {
		out.Data[i] = [4]float64{b.Open, b.Close, b.Low, b.High}
	}
	for i, v := range c.Volume {
		out.Volume[i] = [3]int64{int64(v.Index), v.Volume, int64(v.Direction)}
	}
	return out
}

func averages(in []entity.Average) []Average {
	out := make([]Average, len(in))
	for i, a := range in {
		out[i] = Average{Value: a.Value, Valid: a.Valid}
	}
	return out
}
