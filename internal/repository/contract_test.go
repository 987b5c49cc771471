package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// runStoreContract checks the behaviour every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()
	base := time.Date(2026, 2, 3, 9, 15, 0, 123456000, time.UTC)

	fixture := func(owner string, n int) *models.Activity {
		return &models.Activity{
			ID:              fmt.Sprintf("0190f1d2-%04d-7000-8000-%012d", n, n),
			OwnerID:         owner,
			Name:            fmt.Sprintf("Activity %d", n),
			Description:     "notes",
			EnergyLevel:     models.EnergyDraining,
			DurationMinutes: 30 + n,
			OccurredAt:      base.Add(time.Duration(n) * time.Hour),
			LoggedAt:        base.Add(time.Duration(n)*time.Hour + time.Minute),
			UpdatedAt:       base.Add(time.Duration(n)*time.Hour + time.Minute),
		}
	}

	t.Run("create and read back", func(t *testing.T) {
		store := newStore(t)
		a := fixture("owner-a", 1)
		require.NoError(t, store.Create(ctx, a))

		got, err := store.GetByID(ctx, "owner-a", a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Name, got.Name)
		assert.Equal(t, a.Description, got.Description)
		assert.Equal(t, a.EnergyLevel, got.EnergyLevel)
		assert.Equal(t, a.DurationMinutes, got.DurationMinutes)
		assert.True(t, a.OccurredAt.Equal(got.OccurredAt), "occurred_at %v != %v", got.OccurredAt, a.OccurredAt)
		assert.True(t, a.LoggedAt.Equal(got.LoggedAt))
	})

	t.Run("foreign owner cannot see record", func(t *testing.T) {
		store := newStore(t)
		a := fixture("owner-a", 2)
		require.NoError(t, store.Create(ctx, a))

		_, err := store.GetByID(ctx, "owner-b", a.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, store.Delete(ctx, "owner-b", a.ID), ErrNotFound)

		intruder := *a
		intruder.OwnerID = "owner-b"
		intruder.Name = "hijacked"
		assert.ErrorIs(t, store.Update(ctx, &intruder), ErrNotFound)

		got, err := store.GetByID(ctx, "owner-a", a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.Name, got.Name)
	})

	t.Run("update changes editable fields", func(t *testing.T) {
		store := newStore(t)
		a := fixture("owner-a", 3)
		require.NoError(t, store.Create(ctx, a))

		edited := *a
		edited.Name = "Renamed"
		edited.Description = ""
		edited.EnergyLevel = models.EnergyVeryEnergizing
		edited.DurationMinutes = 90
		edited.OccurredAt = a.OccurredAt.Add(-time.Hour)
		edited.UpdatedAt = a.UpdatedAt.Add(time.Hour)
		require.NoError(t, store.Update(ctx, &edited))

		got, err := store.GetByID(ctx, "owner-a", a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Empty(t, got.Description)
		assert.Equal(t, models.EnergyVeryEnergizing, got.EnergyLevel)
		assert.Equal(t, 90, got.DurationMinutes)
		assert.True(t, edited.OccurredAt.Equal(got.OccurredAt))
		assert.True(t, a.LoggedAt.Equal(got.LoggedAt), "logged_at must not change")
	})

	t.Run("update missing record", func(t *testing.T) {
		store := newStore(t)
		assert.ErrorIs(t, store.Update(ctx, fixture("owner-a", 4)), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		a := fixture("owner-a", 5)
		require.NoError(t, store.Create(ctx, a))

		require.NoError(t, store.Delete(ctx, "owner-a", a.ID))
		_, err := store.GetByID(ctx, "owner-a", a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "owner-a", a.ID), ErrNotFound)
	})

	t.Run("delete many is owner scoped", func(t *testing.T) {
		store := newStore(t)
		mine1, mine2, mine3 := fixture("owner-a", 6), fixture("owner-a", 7), fixture("owner-a", 8)
		theirs := fixture("owner-b", 9)
		for _, a := range []*models.Activity{mine1, mine2, mine3, theirs} {
			require.NoError(t, store.Create(ctx, a))
		}

		n, err := store.DeleteMany(ctx, "owner-a", []string{mine1.ID, mine2.ID, theirs.ID, "missing"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = store.DeleteMany(ctx, "owner-a", nil)
		require.NoError(t, err)
		assert.Zero(t, n)

		remaining, err := store.QueryByOwner(ctx, "owner-a")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, mine3.ID, remaining[0].ID)

		_, err = store.GetByID(ctx, "owner-b", theirs.ID)
		assert.NoError(t, err)
	})

	t.Run("query by owner", func(t *testing.T) {
		store := newStore(t)
		for i := 10; i < 14; i++ {
			require.NoError(t, store.Create(ctx, fixture("owner-a", i)))
		}
		require.NoError(t, store.Create(ctx, fixture("owner-b", 14)))

		got, err := store.QueryByOwner(ctx, "owner-a")
		require.NoError(t, err)
		assert.Len(t, got, 4)
		for _, a := range got {
			assert.Equal(t, "owner-a", a.OwnerID)
		}

		none, err := store.QueryByOwner(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		ctx := context.Background()
		store, err := OpenSQLite(ctx, ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		require.NoError(t, store.Migrate(ctx))
		return store
	})
}

func TestSQLiteMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	var versions int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestSQLiteRejectsOutOfRangeEnergy(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Migrate(ctx))

	now := time.Now()
	err = store.Create(ctx, &models.Activity{
		ID: "x", OwnerID: "o", Name: "n", EnergyLevel: 7, DurationMinutes: 10,
		OccurredAt: now, LoggedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.Error(t, err)
}

func TestLoadMigrations(t *testing.T) {
	for _, dialect := range []string{"postgres", "sqlite"} {
		migrations, err := loadMigrations(dialect)
		require.NoError(t, err, dialect)
		require.NotEmpty(t, migrations, dialect)
		assert.Equal(t, 1, migrations[0].version)
		assert.Equal(t, "create activities", migrations[0].description)
		assert.Len(t, migrations[0].statements, 2)
	}
}

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		name    string
		version int
		ok      bool
	}{
		{"V1__create_activities.up.sql", 1, true},
		{"V12__add_index.up.sql", 12, true},
		{"V0__zero.up.sql", 0, false},
		{"1__no_prefix.up.sql", 0, false},
		{"V2-missing-separator.up.sql", 0, false},
	}
	for _, tt := range tests {
		version, _, ok := parseMigrationName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.version, version, tt.name)
	}
}
