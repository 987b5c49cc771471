package models

import "time"

// Direction selects which end of the energy scale a ranking starts from
type Direction string

const (
	DirectionDraining   Direction = "draining"
	DirectionEnergizing Direction = "energizing"
)

// CategoryHours maps every energy level to the hours spent at it.
// All five levels are always present.
type CategoryHours map[EnergyLevel]float64

// HourlyAverages holds the mean energy level for each local hour of the day.
// A nil entry means no activity occurred in that hour.
type HourlyAverages [24]*float64

// NameSummary ranks one canonical activity name by its average energy
type NameSummary struct {
	Name          string  `json:"name"`
	AverageEnergy float64 `json:"average_energy"`
	Count         int     `json:"count"`
}

// DayPoint is one calendar day of the weekly trend.
// AverageEnergy is nil on days with no activities.
type DayPoint struct {
	Date          string   `json:"date"`
	AverageEnergy *float64 `json:"average_energy"`
	ActivityCount int      `json:"activity_count"`
}

// DaySummary condenses a set of activities into a headline card
type DaySummary struct {
	ActivityCount int      `json:"activity_count"`
	AverageEnergy *float64 `json:"average_energy"`
	TotalMinutes  int      `json:"total_minutes"`
}

// HistoryPage is one page of the filtered activity history
type HistoryPage struct {
	Items      []Activity `json:"items"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Dashboard bundles every insight shown on the owner's home screen
type Dashboard struct {
	GeneratedAt         time.Time      `json:"generated_at"`
	Timezone            string         `json:"timezone"`
	Today               DaySummary     `json:"today"`
	Recent              []Activity     `json:"recent"`
	HourlyAverageEnergy HourlyAverages `json:"hourly_average_energy"`
	HoursPerCategory    CategoryHours  `json:"hours_per_category"`
	TopDraining         []NameSummary  `json:"top_draining"`
	TopEnergizing       []NameSummary  `json:"top_energizing"`
	WeeklyTrend         []DayPoint     `json:"weekly_trend"`
}
