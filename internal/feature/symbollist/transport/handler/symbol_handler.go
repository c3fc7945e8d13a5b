// Package handler provides the HTTP handler of the symbollist feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"nautilus/internal/feature/symbollist/domain/entity"
	"nautilus/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase defines the watchlist operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler serves the watchlist.
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler creates a SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the active symbols as [{code, name}] in display order.
//
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.Error("failed to list symbols", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewSymbolList(symbols))
}
