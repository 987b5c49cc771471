package analytics

import (
	"slices"
	"strings"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// Compare is the ordering every activity listing uses: occurred_at
// descending, then id descending. It returns a negative number when a is
// listed before b, a positive number when b is listed first, and zero only
// for the same record.
//
// Activity ids are UUIDv7 strings, so a larger id is a more recently
// created record and wins ties on identical timestamps.
func Compare(a, b models.Activity) int {
	if c := b.OccurredAt.Compare(a.OccurredAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// Ordered is a sequence already sorted by Compare. Truncation is only
// available on Ordered, so nothing can take the first N of an unsorted set.
type Ordered struct {
	items []models.Activity
}

// Sort returns a sorted copy of activities. The input slice is not modified.
func Sort(activities []models.Activity) Ordered {
	items := slices.Clone(activities)
	slices.SortStableFunc(items, Compare)
	return Ordered{items: items}
}

// Len returns the number of activities in the sequence.
func (o Ordered) Len() int {
	return len(o.items)
}

// Items returns the activities in listing order.
func (o Ordered) Items() []models.Activity {
	if o.items == nil {
		return []models.Activity{}
	}
	return slices.Clone(o.items)
}

// Take keeps the first n activities.
func (o Ordered) Take(n int) Ordered {
	if n < 0 {
		n = 0
	}
	if n >= len(o.items) {
		return o
	}
	return Ordered{items: o.items[:n:n]}
}

// Page returns the page-th slice of size activities, counting pages from 1.
// A page past the end is empty.
func (o Ordered) Page(page, size int) Ordered {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return Ordered{}
	}
	offset := (page - 1) * size
	if offset >= len(o.items) {
		return Ordered{}
	}
	end := min(offset+size, len(o.items))
	return Ordered{items: o.items[offset:end:end]}
}
