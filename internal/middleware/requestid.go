package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID adopts the caller's X-Request-ID or generates one, and stores it
// together with log in the request context.
func RequestID(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming := c.GetHeader(RequestIDHeader)
		if len(incoming) > maxRequestIDLength {
			incoming = ""
		}

		ctx := logger.WithRequestID(c.Request.Context(), incoming)
		ctx = logger.WithLogger(ctx, log)
		id := logger.RequestIDFromContext(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
