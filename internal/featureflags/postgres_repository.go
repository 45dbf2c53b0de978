package featureflags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertFlagQuery = `
	INSERT INTO feature_flags (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET
		value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at
`

// PostgresRepository stores flags in the feature_flags table, with the
// value column holding the JSON-encoded flag value.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetFlag returns the flag stored under key.
func (r *PostgresRepository) GetFlag(ctx context.Context, key string) (*Flag, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM feature_flags WHERE key = $1`, key)

	flag, err := scanFlag(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlagNotFound
		}
		return nil, fmt.Errorf("get flag %q: %w", key, err)
	}
	return flag, nil
}

// GetAllFlags returns every stored flag.
func (r *PostgresRepository) GetAllFlags(ctx context.Context) (map[string]*Flag, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT key, value, updated_at FROM feature_flags ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]*Flag)
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, fmt.Errorf("list flags: %w", err)
		}
		flags[flag.Key] = flag
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	return flags, nil
}

// SetFlag upserts one flag.
func (r *PostgresRepository) SetFlag(ctx context.Context, flag *Flag) error {
	value, err := json.Marshal(flag.Value)
	if err != nil {
		return fmt.Errorf("set flag %q: %w", flag.Key, err)
	}
	if _, err := r.pool.Exec(ctx, upsertFlagQuery, flag.Key, value, time.Now()); err != nil {
		return fmt.Errorf("set flag %q: %w", flag.Key, err)
	}
	return nil
}

// SetFlags upserts a batch of flags in one transaction.
func (r *PostgresRepository) SetFlags(ctx context.Context, flags []*Flag) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set flags: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	now := time.Now()
	for _, flag := range flags {
		value, err := json.Marshal(flag.Value)
		if err != nil {
			return fmt.Errorf("set flag %q: %w", flag.Key, err)
		}
		if _, err := tx.Exec(ctx, upsertFlagQuery, flag.Key, value, now); err != nil {
			return fmt.Errorf("set flag %q: %w", flag.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("set flags: %w", err)
	}
	return nil
}

// DeleteFlag removes the flag under key.
func (r *PostgresRepository) DeleteFlag(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM feature_flags WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete flag %q: %w", key, err)
	}
	return nil
}

func scanFlag(row pgx.Row) (*Flag, error) {
	var (
		flag  Flag
		value []byte
	)
	if err := row.Scan(&flag.Key, &value, &flag.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(value, &flag.Value); err != nil {
		return nil, err
	}
	return &flag, nil
}
