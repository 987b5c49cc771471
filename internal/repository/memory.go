package repository

import (
	"context"
	"sync"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// MemoryStore is a process-local store for development and tests
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]models.Activity
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{activities: make(map[string]models.Activity)}
}

func (s *MemoryStore) Create(_ context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = *a
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, ownerID, id string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryStore) Update(_ context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.activities[a.ID]
	if !ok || existing.OwnerID != a.OwnerID {
		return ErrNotFound
	}
	updated := *a
	updated.LoggedAt = existing.LoggedAt
	s.activities[a.ID] = updated
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok || a.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.activities, id)
	return nil
}

func (s *MemoryStore) DeleteMany(_ context.Context, ownerID string, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if a, ok := s.activities[id]; ok && a.OwnerID == ownerID {
			delete(s.activities, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) QueryByOwner(_ context.Context, ownerID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Activity{}
	for _, a := range s.activities {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }
func (s *MemoryStore) Ping(context.Context) error    { return nil }
func (s *MemoryStore) Close() error                  { return nil }
