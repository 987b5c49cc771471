// Package analytics turns one owner's activities into ordered listings and
// energy insights. Every function here is a pure, synchronous read over the
// slice it is given; loading the slice and enforcing owner scope belong to
// the caller.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// Engine evaluates time-zone dependent views (windows, hour-of-day and
// calendar-day buckets) in a single configured location.
type Engine struct {
	loc *time.Location
}

// New returns an Engine that evaluates calendar boundaries in loc.
// A nil loc means UTC.
func New(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location returns the time zone the engine evaluates boundaries in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// LoadLocation resolves an IANA zone name, treating "" and "UTC" as UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// startOfDay returns local midnight of the calendar day containing t.
func (e *Engine) startOfDay(t time.Time) time.Time {
	local := t.In(e.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.loc)
}

// mustValidEnergy panics when an activity that bypassed write-time
// validation reaches an aggregate.
func mustValidEnergy(a models.Activity) {
	if !a.EnergyLevel.Valid() {
		panic(fmt.Sprintf("analytics: invariant violated: activity %q has energy level %d outside -2..2", a.ID, a.EnergyLevel))
	}
}
