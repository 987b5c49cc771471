package analytics

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

const (
	// DefaultTopLimit is how many names TopByCategory returns by default.
	DefaultTopLimit = 3
	// TrendDays is the number of calendar days covered by WeeklyTrend.
	TrendDays = 7
)

// ErrInvalidDirection is returned by ParseDirection for unknown rankings.
var ErrInvalidDirection = errors.New("direction must be draining or energizing")

// ParseDirection parses "draining" or "energizing" case-insensitively.
func ParseDirection(s string) (models.Direction, error) {
	switch d := models.Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case models.DirectionDraining, models.DirectionEnergizing:
		return d, nil
	default:
		return "", ErrInvalidDirection
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HoursPerCategory sums the duration of every activity per energy level and
// converts it to hours rounded to two decimals. All five levels are present.
func HoursPerCategory(activities []models.Activity) models.CategoryHours {
	minutes := make(map[models.EnergyLevel]int, len(models.AllEnergyLevels))
	for _, a := range activities {
		mustValidEnergy(a)
		minutes[a.EnergyLevel] += a.DurationMinutes
	}

	out := make(models.CategoryHours, len(models.AllEnergyLevels))
	for _, level := range models.AllEnergyLevels {
		out[level] = round2(float64(minutes[level]) / 60)
	}
	return out
}

// HourlyAverageEnergy averages the energy level of the activities that
// occurred in each local hour of the day. The mean is not weighted by
// duration. Hours without activities stay nil.
func (e *Engine) HourlyAverageEnergy(activities []models.Activity) models.HourlyAverages {
	var sums, counts [24]int
	for _, a := range activities {
		mustValidEnergy(a)
		h := a.OccurredAt.In(e.loc).Hour()
		sums[h] += int(a.EnergyLevel)
		counts[h]++
	}

	var out models.HourlyAverages
	for h := range out {
		if counts[h] == 0 {
			continue
		}
		avg := float64(sums[h]) / float64(counts[h])
		out[h] = &avg
	}
	return out
}

// TopByCategory groups activities by name and ranks the groups by average
// energy: ascending for draining, descending for energizing. Equal averages
// go to the name logged more often, then to the alphabetically first name.
func TopByCategory(activities []models.Activity, direction models.Direction, limit int) []models.NameSummary {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	var byAverage func(a, b float64) int
	switch direction {
	case models.DirectionDraining:
		byAverage = cmp.Compare[float64]
	case models.DirectionEnergizing:
		byAverage = func(a, b float64) int { return cmp.Compare(b, a) }
	default:
		panic("analytics: unknown ranking direction " + string(direction))
	}

	type tally struct{ sum, count int }
	tallies := make(map[string]*tally)
	for _, a := range activities {
		mustValidEnergy(a)
		t, ok := tallies[a.Name]
		if !ok {
			t = &tally{}
			tallies[a.Name] = t
		}
		t.sum += int(a.EnergyLevel)
		t.count++
	}

	summaries := make([]models.NameSummary, 0, len(tallies))
	for name, t := range tallies {
		summaries = append(summaries, models.NameSummary{
			Name:          name,
			AverageEnergy: float64(t.sum) / float64(t.count),
			Count:         t.count,
		})
	}

	slices.SortFunc(summaries, func(a, b models.NameSummary) int {
		if c := byAverage(a.AverageEnergy, b.AverageEnergy); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// WeeklyTrend returns one point per local calendar day for the seven days
// ending on ref's day, oldest first. Activities outside those days are
// ignored; days without activities have a nil average and a zero count.
func (e *Engine) WeeklyTrend(activities []models.Activity, ref time.Time) []models.DayPoint {
	first := e.startOfDay(ref).AddDate(0, 0, -(TrendDays - 1))

	points := make([]models.DayPoint, TrendDays)
	index := make(map[string]int, TrendDays)
	for i := range points {
		date := first.AddDate(0, 0, i).Format(time.DateOnly)
		points[i].Date = date
		index[date] = i
	}

	var sums [TrendDays]int
	for _, a := range activities {
		mustValidEnergy(a)
		i, ok := index[a.OccurredAt.In(e.loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		sums[i] += int(a.EnergyLevel)
		points[i].ActivityCount++
	}

	for i := range points {
		if points[i].ActivityCount == 0 {
			continue
		}
		avg := float64(sums[i]) / float64(points[i].ActivityCount)
		points[i].AverageEnergy = &avg
	}
	return points
}

// Summarize reports the count, mean energy rounded to two decimals, and
// total minutes of a set. AverageEnergy is nil for an empty set.
func Summarize(activities []models.Activity) models.DaySummary {
	var summary models.DaySummary
	sum := 0
	for _, a := range activities {
		mustValidEnergy(a)
		sum += int(a.EnergyLevel)
		summary.TotalMinutes += a.DurationMinutes
		summary.ActivityCount++
	}
	if summary.ActivityCount > 0 {
		avg := round2(float64(sum) / float64(summary.ActivityCount))
		summary.AverageEnergy = &avg
	}
	return summary
}
