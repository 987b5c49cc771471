package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations
var migrationFS embed.FS

// migration is one versioned schema change read from migrations/<dialect>.
type migration struct {
	version     int
	description string
	statements  []string
}

// loadMigrations reads V<n>__<description>.up.sql files for a dialect,
// sorted by version.
func loadMigrations(dialect string) ([]migration, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s migrations: %w", dialect, err)
	}

	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		version, description, ok := parseMigrationName(name)
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %q", name)
		}

		body, err := fs.ReadFile(migrationFS, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		out = append(out, migration{
			version:     version,
			description: description,
			statements:  splitStatements(string(body)),
		})
	}

	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })
	return out, nil
}

// parseMigrationName splits "V1__create_activities.up.sql" into 1 and
// "create activities".
func parseMigrationName(name string) (int, string, bool) {
	base := strings.TrimSuffix(name, ".up.sql")
	prefix, description, found := strings.Cut(base, "__")
	if !found || !strings.HasPrefix(prefix, "V") {
		return 0, "", false
	}
	version, err := strconv.Atoi(strings.TrimPrefix(prefix, "V"))
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, strings.ReplaceAll(description, "_", " "), true
}

// splitStatements breaks a migration into individual statements so each one
// can run through drivers that reject multi-statement Exec.
func splitStatements(body string) []string {
	var out []string
	for _, stmt := range strings.Split(body, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
