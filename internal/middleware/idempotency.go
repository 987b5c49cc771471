package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"

	maxIdempotencyKeyLength = 255
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key on POST and PUT, so a retried create does not log the same
// activity twice. Keys are scoped to owner and route. Requests without the
// header pass through. Must run after Auth.
func Idempotency(store repository.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		log := logger.Ctx(c.Request.Context())

		if len(key) > maxIdempotencyKeyLength {
			apierror.WriteProblem(c, apierror.NewInvalidParamError(apierror.GetRequestID(c), IdempotencyKeyHeader, "must be at most 255 characters"))
			c.Abort()
			return
		}

		ownerID := c.GetString(OwnerIDKey)
		if ownerID == "" {
			log.Warn("idempotency check failed: no owner in context")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		route := method + " " + c.FullPath()

		existing, err := store.Get(c.Request.Context(), key, route, ownerID)
		if err != nil {
			// Proceed without idempotency rather than block a valid write
			log.Error("failed to check idempotency key", logger.Err(err), logger.String("key", key))
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, "application/json; charset=utf-8", existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		// Only successful responses are replayed
		statusCode := c.Writer.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}
		if err := store.Store(c.Request.Context(), key, route, ownerID, blw.body.Bytes(), statusCode); err != nil {
			log.Warn("failed to store idempotency key", logger.Err(err), logger.String("key", key))
		}
	}
}
