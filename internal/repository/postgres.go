package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

const activityColumns = `id, owner_id, name, description, energy_level, duration_minutes, occurred_at, logged_at, updated_at`

// PostgresStore keeps activities in PostgreSQL through a pgx pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return NewPostgresStore(pool), nil
}

func (s *PostgresStore) Create(ctx context.Context, a *models.Activity) error {
	const query = `INSERT INTO activities (` + activityColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := s.pool.Exec(ctx, query,
		a.ID,
		a.OwnerID,
		a.Name,
		a.Description,
		int(a.EnergyLevel),
		a.DurationMinutes,
		a.OccurredAt,
		a.LoggedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, ownerID, id string) (*models.Activity, error) {
	const query = `SELECT ` + activityColumns + ` FROM activities WHERE owner_id=$1 AND id=$2`

	a, err := scanActivity(s.pool.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Update(ctx context.Context, a *models.Activity) error {
	const query = `UPDATE activities
        SET name=$3, description=$4, energy_level=$5, duration_minutes=$6, occurred_at=$7, updated_at=$8
        WHERE owner_id=$1 AND id=$2`

	tag, err := s.pool.Exec(ctx, query,
		a.OwnerID,
		a.ID,
		a.Name,
		a.Description,
		int(a.EnergyLevel),
		a.DurationMinutes,
		a.OccurredAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM activities WHERE owner_id=$1 AND id=$2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteMany(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM activities WHERE owner_id=$1 AND id = ANY($2)`, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activities: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) QueryByOwner(ctx context.Context, ownerID string) ([]models.Activity, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+activityColumns+` FROM activities WHERE owner_id=$1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
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
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
        version     INTEGER PRIMARY KEY,
        description TEXT        NOT NULL,
        applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    )`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	migrations, err := loadMigrations("postgres")
	if err != nil {
		return err
	}

	var current int
	if err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
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

func (s *PostgresStore) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range m.statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`, m.version, m.description); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	var energy int16
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &energy, &a.DurationMinutes, &a.OccurredAt, &a.LoggedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.EnergyLevel = models.EnergyLevel(energy)
	return &a, nil
}
