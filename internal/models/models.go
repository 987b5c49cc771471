package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnergyLevel is the signed impact an activity had on the owner's energy.
type EnergyLevel int

const (
	EnergyVeryDraining   EnergyLevel = -2
	EnergyDraining       EnergyLevel = -1
	EnergyNeutral        EnergyLevel = 0
	EnergyEnergizing     EnergyLevel = 1
	EnergyVeryEnergizing EnergyLevel = 2
)

// AllEnergyLevels lists the scale from most draining to most energizing.
var AllEnergyLevels = []EnergyLevel{
	EnergyVeryDraining,
	EnergyDraining,
	EnergyNeutral,
	EnergyEnergizing,
	EnergyVeryEnergizing,
}

// Field limits enforced when an activity is written.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MinDurationMinutes   = 1
	MaxDurationMinutes   = 1440
)

// Valid reports whether e is on the five-point scale.
func (e EnergyLevel) Valid() bool {
	return e >= EnergyVeryDraining && e <= EnergyVeryEnergizing
}

// Label returns the display name of the level.
func (e EnergyLevel) Label() string {
	switch e {
	case EnergyVeryDraining:
		return "Very Draining"
	case EnergyDraining:
		return "Draining"
	case EnergyNeutral:
		return "Neutral"
	case EnergyEnergizing:
		return "Energizing"
	case EnergyVeryEnergizing:
		return "Very Energizing"
	default:
		return "Unknown"
	}
}

// Emoji returns the icon shown next to the level.
func (e EnergyLevel) Emoji() string {
	switch e {
	case EnergyVeryDraining:
		return "😫"
	case EnergyDraining:
		return "😔"
	case EnergyNeutral:
		return "😐"
	case EnergyEnergizing:
		return "😊"
	case EnergyVeryEnergizing:
		return "🚀"
	default:
		return "❓"
	}
}

// ParseEnergyLevel parses a query parameter such as "-2" or "1".
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("energy level %q is not an integer", s)
	}
	level := EnergyLevel(n)
	if !level.Valid() {
		return 0, fmt.Errorf("energy level %d is outside -2..2", n)
	}
	return level, nil
}

// Activity is a single logged activity owned by one user
type Activity struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"owner_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	EnergyLevel     EnergyLevel `json:"energy_level"`
	DurationMinutes int         `json:"duration_minutes"`
	OccurredAt      time.Time   `json:"occurred_at"`
	LoggedAt        time.Time   `json:"logged_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// DurationLabel renders the duration as "1h 30m", "2h" or "45m".
func (a Activity) DurationLabel() string {
	return FormatDuration(a.DurationMinutes)
}

// FormatDuration renders a minute count the way activity lists display it.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// MarshalJSON adds the display helpers next to the stored fields.
func (a Activity) MarshalJSON() ([]byte, error) {
	type stored Activity
	return json.Marshal(struct {
		stored
		EnergyLabel   string `json:"energy_label"`
		EnergyEmoji   string `json:"energy_emoji"`
		DurationLabel string `json:"duration_label"`
	}{
		stored:        stored(a),
		EnergyLabel:   a.EnergyLevel.Label(),
		EnergyEmoji:   a.EnergyLevel.Emoji(),
		DurationLabel: a.DurationLabel(),
	})
}

// CreateActivityRequest represents the request to log an activity.
// EnergyLevel and DurationMinutes are pointers so a missing field can be told
// apart from a neutral level. OccurredAt defaults to the time of the request.
type CreateActivityRequest struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	EnergyLevel     *int       `json:"energy_level"`
	DurationMinutes *int       `json:"duration_minutes"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

// UpdateActivityRequest represents a partial edit. Absent fields are left as
// they are; a null description clears it.
type UpdateActivityRequest struct {
	Name            *string        `json:"name"`
	Description     NullableString `json:"description"`
	EnergyLevel     *int           `json:"energy_level"`
	DurationMinutes *int           `json:"duration_minutes"`
	OccurredAt      *time.Time     `json:"occurred_at"`
}

// BulkDeleteRequest lists the activities to remove in one call
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports how many of the requested activities were removed
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
