package repository

import (
	"context"
	"sync"
	"time"
)

// IdempotencyRecord is a cached response replayed for a repeated
// Idempotency-Key.
type IdempotencyRecord struct {
	StatusCode   int
	ResponseBody []byte
	StoredAt     time.Time
}

// IdempotencyStore defines the interface for idempotency key operations
type IdempotencyStore interface {
	// Get returns the stored record, or nil when the key is unknown or expired
	Get(ctx context.Context, key, route, ownerID string) (*IdempotencyRecord, error)

	// Store saves a new idempotency record
	Store(ctx context.Context, key, route, ownerID string, responseBody []byte, statusCode int) error
}

type idempotencyKey struct {
	key, route, ownerID string
}

// MemoryIdempotencyStore keeps records in process for ttl. Replays only work
// against the instance that served the first request.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	records map[idempotencyKey]IdempotencyRecord
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryIdempotencyStore creates a store whose records expire after ttl.
func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		records: make(map[idempotencyKey]IdempotencyRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key, route, ownerID string) (*IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyKey{key: key, route: route, ownerID: ownerID}
	rec, ok := s.records[k]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(rec.StoredAt) > s.ttl {
		delete(s.records, k)
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryIdempotencyStore) Store(_ context.Context, key, route, ownerID string, responseBody []byte, statusCode int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// Expired records are dropped on write so the map cannot grow without bound.
	for k, rec := range s.records {
		if now.Sub(rec.StoredAt) > s.ttl {
			delete(s.records, k)
		}
	}

	body := make([]byte, len(responseBody))
	copy(body, responseBody)
	s.records[idempotencyKey{key: key, route: route, ownerID: ownerID}] = IdempotencyRecord{
		StatusCode:   statusCode,
		ResponseBody: body,
		StoredAt:     now,
	}
	return nil
}
