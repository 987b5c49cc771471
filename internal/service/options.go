package service

import (
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/events"
)

type options struct {
	now       func() time.Time
	publisher events.Publisher
}

// Option configures a service.
type Option func(*options)

// WithClock replaces time.Now, for tests and reports pinned to an instant.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithPublisher sets where activity change events go. The default drops them.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, publisher: events.NoopPublisher{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
