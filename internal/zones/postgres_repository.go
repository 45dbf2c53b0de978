package zones

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL zone repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const zoneColumns = `
	id, name, center_lat, center_lon, radius_km,
	weight, description, created_at, updated_at
`

// Get retrieves a zone by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM hazard_zones WHERE id = $1`
	return r.scanZone(ctx, query, id)
}

// GetByName retrieves a zone by its display name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM hazard_zones WHERE name = $1`
	return r.scanZone(ctx, query, name)
}

// scanZone scans a zone from a single-row query result.
func (r *PostgresRepository) scanZone(ctx context.Context, query string, args ...interface{}) (*Zone, error) {
	var zone Zone

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&zone.ID,
		&zone.Name,
		&zone.Center.Lat,
		&zone.Center.Lon,
		&zone.RadiusKm,
		&zone.Weight,
		&zone.Description,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	return &zone, nil
}

// List retrieves zones ordered by creation time with pagination.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hazard_zones`).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + zoneColumns + `
		FROM hazard_zones
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Zone
	for rows.Next() {
		var zone Zone
		err := rows.Scan(
			&zone.ID,
			&zone.Name,
			&zone.Center.Lat,
			&zone.Center.Lon,
			&zone.RadiusKm,
			&zone.Weight,
			&zone.Description,
			&zone.CreatedAt,
			&zone.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &zone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ListResult{
		Items: items,
		Total: total,
	}, nil
}

// Create creates a new zone.
func (r *PostgresRepository) Create(ctx context.Context, zone *Zone) error {
	query := `
		INSERT INTO hazard_zones (
			id, name, center_lat, center_lon, radius_km,
			weight, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		zone.ID,
		zone.Name,
		zone.Center.Lat,
		zone.Center.Lon,
		zone.RadiusKm,
		zone.Weight,
		zone.Description,
		zone.CreatedAt,
		zone.UpdatedAt,
	)
	return err
}

// Update updates an existing zone.
func (r *PostgresRepository) Update(ctx context.Context, zone *Zone) error {
	query := `
		UPDATE hazard_zones SET
			name = $2,
			center_lat = $3,
			center_lon = $4,
			radius_km = $5,
			weight = $6,
			description = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		zone.ID,
		zone.Name,
		zone.Center.Lat,
		zone.Center.Lon,
		zone.RadiusKm,
		zone.Weight,
		zone.Description,
		zone.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrZoneNotFound
	}

	return nil
}

// Delete deletes a zone by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM hazard_zones WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
