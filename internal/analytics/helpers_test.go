package analytics

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// newYork has a DST change, which makes calendar arithmetic bugs visible.
var newYork = mustLocation("America/New_York")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

var idSeq int

// activity builds a valid activity; ids grow with every call so later
// fixtures behave like later-created records.
func activity(name string, energy models.EnergyLevel, minutes int, occurred time.Time) models.Activity {
	idSeq++
	return models.Activity{
		ID:              fmt.Sprintf("id-%06d", idSeq),
		OwnerID:         "owner-1",
		Name:            name,
		EnergyLevel:     energy,
		DurationMinutes: minutes,
		OccurredAt:      occurred,
		LoggedAt:        occurred,
	}
}

func names(activities []models.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Name)
	}
	return out
}
