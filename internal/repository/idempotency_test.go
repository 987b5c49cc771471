package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewMemoryIdempotencyStore(time.Hour)
	s.now = func() time.Time { return clock }

	rec, err := s.Get(ctx, "k1", "POST /api/v1/activities", "owner-1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	body := []byte(`{"id":"a"}`)
	require.NoError(t, s.Store(ctx, "k1", "POST /api/v1/activities", "owner-1", body, 201))
	body[0] = 'X'

	rec, err = s.Get(ctx, "k1", "POST /api/v1/activities", "owner-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 201, rec.StatusCode)
	assert.Equal(t, `{"id":"a"}`, string(rec.ResponseBody))

	// Keys are scoped by owner and route.
	rec, err = s.Get(ctx, "k1", "POST /api/v1/activities", "owner-2")
	require.NoError(t, err)
	assert.Nil(t, rec)
	rec, err = s.Get(ctx, "k1", "POST /api/v1/activities/bulk-delete", "owner-1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	clock = clock.Add(2 * time.Hour)
	rec, err = s.Get(ctx, "k1", "POST /api/v1/activities", "owner-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
