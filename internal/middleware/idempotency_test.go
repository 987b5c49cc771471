package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/JonnyWalker81/energy/backend/internal/repository"
)

func TestIdempotencyReplaysSuccessfulResponse(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(OwnerIDKey, c.GetHeader("X-Test-Owner"))
		c.Next()
	})
	r.Use(Idempotency(repository.NewMemoryIdempotencyStore(time.Hour)))
	r.POST("/activities", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	r.POST("/fail", func(c *gin.Context) {
		calls++
		c.Status(http.StatusBadRequest)
	})

	do := func(path, owner, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("X-Test-Owner", owner)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	first := do("/activities", "owner-1", "key-1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())

	replay := do("/activities", "owner-1", "key-1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.JSONEq(t, `{"call":1}`, replay.Body.String())
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, calls)

	other := do("/activities", "owner-2", "key-1")
	assert.JSONEq(t, `{"call":2}`, other.Body.String())

	noKey := do("/activities", "owner-1", "")
	assert.JSONEq(t, `{"call":3}`, noKey.Body.String())

	// Failures are not cached.
	do("/fail", "owner-1", "key-2")
	do("/fail", "owner-1", "key-2")
	assert.Equal(t, 5, calls)
}
