package analytics

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// DefaultSuggestionLimit caps the names returned by Suggest.
const DefaultSuggestionLimit = 5

// variant tallies one exact spelling of an activity name.
type variant struct {
	name       string
	count      int
	lastLogged time.Time
	lastID     string
}

func (v *variant) add(a models.Activity) {
	v.count++
	if a.LoggedAt.After(v.lastLogged) || (a.LoggedAt.Equal(v.lastLogged) && a.ID > v.lastID) {
		v.lastLogged = a.LoggedAt
		v.lastID = a.ID
	}
}

// outranks orders variants by count, then by most recent entry.
func (v *variant) outranks(o *variant) bool {
	if v.count != o.count {
		return v.count > o.count
	}
	if !v.lastLogged.Equal(o.lastLogged) {
		return v.lastLogged.After(o.lastLogged)
	}
	if v.lastID != o.lastID {
		return v.lastID > o.lastID
	}
	return v.name < o.name
}

// nameGroup holds every spelling that folds to the same key.
type nameGroup struct {
	variants map[string]*variant
	total    variant
}

func (g *nameGroup) add(a models.Activity) {
	v, ok := g.variants[a.Name]
	if !ok {
		v = &variant{name: a.Name}
		g.variants[a.Name] = v
	}
	v.add(a)
	g.total.add(a)
}

func (g *nameGroup) best() *variant {
	var best *variant
	for _, v := range g.variants {
		if best == nil || v.outranks(best) {
			best = v
		}
	}
	return best
}

// groupByFoldedName buckets activities by Unicode case-folded name. When
// keep is non-nil only keys it accepts are collected.
func groupByFoldedName(activities []models.Activity, folder cases.Caser, keep func(key string) bool) map[string]*nameGroup {
	groups := make(map[string]*nameGroup)
	for _, a := range activities {
		key := folder.String(strings.TrimSpace(a.Name))
		if key == "" || (keep != nil && !keep(key)) {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &nameGroup{variants: make(map[string]*variant)}
			groups[key] = g
		}
		g.add(a)
	}
	return groups
}

// Canonicalize returns the spelling an owner already uses for raw.
//
// raw is trimmed and matched case-insensitively (Unicode case folding)
// against existing, which must hold only that owner's activities. The most
// frequent exact spelling wins; equal counts go to the spelling logged most
// recently. With no match the trimmed input is returned unchanged.
func Canonicalize(existing []models.Activity, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	folder := cases.Fold()
	target := folder.String(trimmed)
	groups := groupByFoldedName(existing, folder, func(key string) bool { return key == target })

	g, ok := groups[target]
	if !ok {
		return trimmed
	}
	return g.best().name
}

// Suggest returns up to limit canonical names containing query, most used
// first. Ranking reuses the canonicalization rule: count, then recency.
// An empty query yields no suggestions.
func Suggest(existing []models.Activity, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))
	if needle == "" {
		return []string{}
	}

	groups := groupByFoldedName(existing, folder, func(key string) bool {
		return strings.Contains(key, needle)
	})

	ranked := make([]*nameGroup, 0, len(groups))
	for _, g := range groups {
		g.total.name = g.best().name
		ranked = append(ranked, g)
	}
	slices.SortFunc(ranked, func(a, b *nameGroup) int {
		switch {
		case a.total.outranks(&b.total):
			return -1
		case b.total.outranks(&a.total):
			return 1
		default:
			return 0
		}
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, g := range ranked[:min(limit, len(ranked))] {
		out = append(out, g.total.name)
	}
	return out
}
