package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/events"
	"github.com/JonnyWalker81/energy/backend/internal/models"
	"github.com/JonnyWalker81/energy/backend/internal/repository"
)

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }

// recordingPublisher captures published events, optionally failing every call
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// failingStore wraps a MemoryStore and fails reads once broken is set
type failingStore struct {
	*repository.MemoryStore
	broken bool
}

var errStoreDown = errors.New("store unavailable")

func (s *failingStore) QueryByOwner(ctx context.Context, ownerID string) ([]models.Activity, error) {
	if s.broken {
		return nil, errStoreDown
	}
	return s.MemoryStore.QueryByOwner(ctx, ownerID)
}

// seed stores an activity directly, bypassing the service.
func seed(store repository.ActivityStore, id, owner, name string, energy models.EnergyLevel, minutes int, occurred time.Time) models.Activity {
	a := models.Activity{
		ID:              id,
		OwnerID:         owner,
		Name:            name,
		EnergyLevel:     energy,
		DurationMinutes: minutes,
		OccurredAt:      occurred,
		LoggedAt:        occurred,
		UpdatedAt:       occurred,
	}
	if err := store.Create(context.Background(), &a); err != nil {
		panic(err)
	}
	return a
}
