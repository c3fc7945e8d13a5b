// Package handler provides the HTTP handlers of the stock feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"nautilus/internal/feature/stock/domain/entity"
	"nautilus/internal/feature/stock/transport/http/dto"
	"nautilus/internal/feature/stock/usecase"
)

// StockUsecase defines the stock operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockUsecase interface {
	GetChart(ctx context.Context, id, interval string) (*entity.Chart, error)
	GetClose(ctx context.Context, id, interval string) (*entity.CloseSeries, error)
	GetSignals(ctx context.Context, id string) ([]entity.Signal, error)
}

// StockHandler handles HTTP requests for stock data.
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetStock returns the OHLC chart of a ticker or company name.
//
// GET /stock/:id?interval=1Y
func (h *StockHandler) GetStock(c *gin.Context) {
	chart, err := h.uc.GetChart(c.Request.Context(), c.Param("id"), c.Query("interval"))
	if err != nil {
		h.fail(c, "chart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChartResponse(chart))
}

// GetClose returns only the closing prices.
//
// GET /stock/:id/close?interval=1Y
func (h *StockHandler) GetClose(c *gin.Context) {
	series, err := h.uc.GetClose(c.Request.Context(), c.Param("id"), c.Query("interval"))
	if err != nil {
		h.fail(c, "close", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCloseResponse(series))
}

// GetSignals returns the 6% move signals of a ticker.
//
// GET /stock/:id/signals
func (h *StockHandler) GetSignals(c *gin.Context) {
	signals, err := h.uc.GetSignals(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "signals", err)
		return
	}
	if len(signals) == 0 {
		c.JSON(http.StatusOK, dto.NewEmptyResponse())
		return
	}
	c.JSON(http.StatusOK, dto.NewSignalsResponse(signals))
}

// fail maps usecase errors to responses. Unknown symbols and empty history
// are not errors for clients: they receive {"data": []}.
func (h *StockHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrSymbolNotFound), errors.Is(err, usecase.ErrNoData):
		slog.Info("no stock data", "op", op, "id", c.Param("id"), "reason", err)
		c.JSON(http.StatusOK, dto.NewEmptyResponse())
	case errors.Is(err, usecase.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("stock request failed", "op", op, "id", c.Param("id"), "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
}
