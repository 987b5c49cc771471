package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

func repeat(name string, n int, loggedAt time.Time) []models.Activity {
	out := make([]models.Activity, 0, n)
	for i := 0; i < n; i++ {
		a := activity(name, 0, 10, loggedAt)
		out = append(out, a)
	}
	return out
}

func TestCanonicalize(t *testing.T) {
	early := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)

	var majority []models.Activity
	majority = append(majority, repeat("Meeting", 5, early)...)
	majority = append(majority, repeat("meeting", 2, late)...)

	var tied []models.Activity
	tied = append(tied, repeat("Yoga", 2, early)...)
	tied = append(tied, repeat("yoga", 2, late)...)

	tests := []struct {
		name     string
		existing []models.Activity
		raw      string
		want     string
	}{
		{name: "most frequent variant wins", existing: majority, raw: "MEETING", want: "Meeting"},
		{name: "input is trimmed before matching", existing: majority, raw: "  meeting \t", want: "Meeting"},
		{name: "tie goes to most recently logged", existing: tied, raw: "YOGA", want: "yoga"},
		{name: "no match returns trimmed input", existing: majority, raw: "  Gym ", want: "Gym"},
		{name: "no history returns trimmed input", existing: nil, raw: "Walk", want: "Walk"},
		{name: "whitespace only is a no-op", existing: majority, raw: "   ", want: ""},
		{name: "substring is not a match", existing: majority, raw: "Meet", want: "Meet"},
		{name: "accented letters fold", existing: repeat("Café", 1, early), raw: "CAFÉ", want: "Café"},
		{name: "full case folding", existing: repeat("Straße", 1, early), raw: "STRASSE", want: "Straße"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.existing, tt.raw))
		})
	}
}

func TestCanonicalizeTieUsesLatestEntryOfEachVariant(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	existing := []models.Activity{
		activity("Read", 0, 10, base),
		activity("read", 0, 10, base.Add(time.Hour)),
		// "Read" was used again most recently
		activity("Read", 0, 10, base.Add(2*time.Hour)),
		activity("read", 0, 10, base.Add(30*time.Minute)),
	}
	assert.Equal(t, "Read", Canonicalize(existing, "READ"))
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	existing := append(repeat("Deep Work", 3, base), repeat("deep work", 1, base.Add(time.Hour))...)

	for _, raw := range []string{"DEEP WORK", "deep work", "Deep work", " deep WORK "} {
		once := Canonicalize(existing, raw)
		twice := Canonicalize(existing, once)
		assert.Equal(t, once, twice, raw)
		assert.Equal(t, "Deep Work", once, raw)
	}
}

func TestSuggest(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	var existing []models.Activity
	existing = append(existing, repeat("Meeting", 4, base)...)
	existing = append(existing, repeat("meeting", 1, base)...)
	existing = append(existing, repeat("Team meeting", 2, base)...)
	existing = append(existing, repeat("Meditation", 3, base)...)
	existing = append(existing, repeat("Running", 6, base)...)

	assert.Equal(t, []string{"Meeting", "Meditation", "Team meeting"}, Suggest(existing, "me", 5))
	assert.Equal(t, []string{"Meeting"}, Suggest(existing, "me", 1))
	assert.Equal(t, []string{"Running"}, Suggest(existing, "RUN", 0))
	assert.Empty(t, Suggest(existing, "swim", 5))
	assert.Empty(t, Suggest(existing, "  ", 5))
	assert.NotNil(t, Suggest(nil, "", 5))
}

func TestSuggestDefaultLimit(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	var existing []models.Activity
	for _, name := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		existing = append(existing, activity(name, 0, 10, base))
	}
	assert.Len(t, Suggest(existing, "a", 0), DefaultSuggestionLimit)
}
