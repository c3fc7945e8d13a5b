// Package middleware holds gin middleware shared by all routes.
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request identifier in both directions.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key of the request identifier.
	ContextRequestID = "requestID"
)

// RequestID propagates the caller's X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()

		if len(c.Errors) > 0 {
			slog.Warn("request finished with errors", "request_id", id, "path", c.FullPath(), "errors", c.Errors.String())
		}
	}
}
