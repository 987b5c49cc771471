package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// SQLiteStore keeps activities in a SQLite file (or ":memory:") through the
// pure Go modernc driver. Timestamps are stored as UTC RFC 3339 text.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path and applies the connection pragmas. SQLite allows a
// single writer, so the pool is limited to one connection; this also keeps
// a ":memory:" database alive across calls.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func (s *SQLiteStore) Create(ctx context.Context, a *models.Activity) error {
	const query = `INSERT INTO activities (` + activityColumns + `) VALUES (?,?,?,?,?,?,?,?,?)`

	_, err := s.db.ExecContext(ctx, query,
		a.ID,
		a.OwnerID,
		a.Name,
		a.Description,
		int(a.EnergyLevel),
		a.DurationMinutes,
		formatTime(a.OccurredAt),
		formatTime(a.LoggedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, ownerID, id string) (*models.Activity, error) {
	const query = `SELECT ` + activityColumns + ` FROM activities WHERE owner_id = ? AND id = ?`

	a, err := scanSQLiteActivity(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

func (s *SQLiteStore) Update(ctx context.Context, a *models.Activity) error {
	const query = `UPDATE activities
        SET name = ?, description = ?, energy_level = ?, duration_minutes = ?, occurred_at = ?, updated_at = ?
        WHERE owner_id = ? AND id = ?`

	res, err := s.db.ExecContext(ctx, query,
		a.Name,
		a.Description,
		int(a.EnergyLevel),
		a.DurationMinutes,
		formatTime(a.OccurredAt),
		formatTime(a.UpdatedAt),
		a.OwnerID,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE owner_id = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activities: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted activities: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) QueryByOwner(ctx context.Context, ownerID string) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		a, err := scanSQLiteActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return activities, nil
}

// Migrate applies pending embedded migrations, one transaction per version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
        version     INTEGER PRIMARY KEY CHECK (version > 0),
        description TEXT    NOT NULL,
        applied_at  TEXT    NOT NULL
    )`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	migrations, err := loadMigrations("sqlite")
	if err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("failed to apply migration V%d: %w", m.version, err)
		}
	}
	return nil
}

func (s *SQLiteStore) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)`,
		m.version, m.description, formatTime(time.Now()),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteActivity(row rowScanner) (*models.Activity, error) {
	var (
		a                         models.Activity
		energy                    int
		occurred, logged, updated string
	)
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &energy, &a.DurationMinutes, &occurred, &logged, &updated); err != nil {
		return nil, err
	}
	a.EnergyLevel = models.EnergyLevel(energy)

	var err error
	if a.OccurredAt, err = parseTime(occurred); err != nil {
		return nil, fmt.Errorf("bad occurred_at %q: %w", occurred, err)
	}
	if a.LoggedAt, err = parseTime(logged); err != nil {
		return nil, fmt.Errorf("bad logged_at %q: %w", logged, err)
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("bad updated_at %q: %w", updated, err)
	}
	return &a, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
