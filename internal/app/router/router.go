// Package router wires the HTTP routes of the stock API.
package router

import (
	"github.com/gin-gonic/gin"

	stockhandler "nautilus/internal/feature/stock/transport/handler"
	symbollisthandler "nautilus/internal/feature/symbollist/transport/handler"
	"nautilus/internal/platform/http/handler"
	"nautilus/internal/platform/http/middleware"
	jwtmw "nautilus/internal/platform/jwt"
)

// NewRouter builds the gin engine. When jwtSecret is empty the data routes
// are public; otherwise they require a bearer token signed with it.
func NewRouter(stock *stockhandler.StockHandler, symbol *symbollisthandler.SymbolHandler,
	ready gin.HandlerFunc, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	// probes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	if ready != nil {
		r.GET("/readyz", ready)
	}

	api := r.Group("/")
	if jwtSecret != "" {
		api.Use(jwtmw.AuthRequired(jwtSecret))
	}
	{
		api.GET("/symbols", symbol.List)
		api.GET("/stock/:id", stock.GetStock)
		api.GET("/stock/:id/close", stock.GetClose)
		api.GET("/stock/:id/signals", stock.GetSignals)
	}

	return r
}
