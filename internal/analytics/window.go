package analytics

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// Window scopes which activities take part in a listing or aggregate
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ErrInvalidWindow is returned by ParseWindow for anything but day, week or month.
var ErrInvalidWindow = errors.New("window must be one of day, week, month")

// ParseWindow parses a window name case-insensitively.
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case WindowDay, WindowWeek, WindowMonth:
		return w, nil
	default:
		return "", ErrInvalidWindow
	}
}

// Bounds returns the inclusive range covered by w ending at ref.
//
//	day:   local midnight of ref's calendar day
//	week:  ref minus 7 calendar days
//	month: ref minus 30 calendar days
//
// Calendar arithmetic happens in the engine's location, so a DST change
// inside the window does not shift the lower bound by an hour.
func (e *Engine) Bounds(w Window, ref time.Time) (lower, upper time.Time) {
	local := ref.In(e.loc)
	switch w {
	case WindowDay:
		lower = e.startOfDay(local)
	case WindowWeek:
		lower = local.AddDate(0, 0, -7)
	case WindowMonth:
		lower = local.AddDate(0, 0, -30)
	default:
		panic("analytics: unknown window " + string(w))
	}
	return lower, local
}

// FilterByWindow keeps the activities with lower <= occurred_at <= ref.
// The result is not ordered.
func (e *Engine) FilterByWindow(activities []models.Activity, w Window, ref time.Time) []models.Activity {
	lower, upper := e.Bounds(w, ref)
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if a.OccurredAt.Before(lower) || a.OccurredAt.After(upper) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Filter narrows a set by energy level and name. Zero-valued fields do not
// filter; set fields are combined with AND.
type Filter struct {
	Energy *models.EnergyLevel
	Search string
}

// Apply returns the activities matching every set field of f.
func (f Filter) Apply(activities []models.Activity) []models.Activity {
	needle := ""
	folder := cases.Fold()
	if s := strings.TrimSpace(f.Search); s != "" {
		needle = folder.String(s)
	}

	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if f.Energy != nil && a.EnergyLevel != *f.Energy {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(a.Name), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}
