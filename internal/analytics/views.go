package analytics

import (
	"time"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

const (
	// DefaultRecentLimit is the size of the home screen feed.
	DefaultRecentLimit = 5
	// DefaultPageSize is the history page size when none is requested.
	DefaultPageSize = 20
	// MaxPageSize caps a requested history page size.
	MaxPageSize = 100
)

// Recent returns the limit most recent activities that occurred today,
// newest first. A limit <= 0 means DefaultRecentLimit.
func (e *Engine) Recent(activities []models.Activity, ref time.Time, limit int) []models.Activity {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	today := e.FilterByWindow(activities, WindowDay, ref)
	return Sort(today).Take(limit).Items()
}

// HistoryQuery selects one page of the owner's history.
type HistoryQuery struct {
	Window   Window
	Filter   Filter
	Page     int
	PageSize int
}

// normalized fills defaults and clamps the paging fields.
func (q HistoryQuery) normalized() HistoryQuery {
	if q.Window == "" {
		q.Window = WindowDay
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// History windows, filters, sorts and paginates activities in that order.
// TotalCount is the number of matches before pagination.
func (e *Engine) History(activities []models.Activity, q HistoryQuery, ref time.Time) models.HistoryPage {
	q = q.normalized()

	matched := q.Filter.Apply(e.FilterByWindow(activities, q.Window, ref))
	ordered := Sort(matched)

	total := ordered.Len()
	pages := max(1, (total+q.PageSize-1)/q.PageSize)

	return models.HistoryPage{
		Items:      ordered.Page(q.Page, q.PageSize).Items(),
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: pages,
	}
}
