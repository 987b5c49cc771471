// Package events publishes activity change notifications to downstream
// consumers.
package events

import (
	"context"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// Event types.
const (
	TypeActivityLogged  = "activity.logged"
	TypeActivityUpdated = "activity.updated"
	TypeActivityDeleted = "activity.deleted"
)

// Event describes one change to an owner's activities. Activity is set for
// logged and updated events, ActivityIDs for deletions.
type Event struct {
	Type        string           `json:"type"`
	OwnerID     string           `json:"owner_id"`
	Activity    *models.Activity `json:"activity,omitempty"`
	ActivityIDs []string         `json:"activity_ids,omitempty"`
	EmittedAt   time.Time        `json:"emitted_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
