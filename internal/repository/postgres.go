package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"coordinate-converter/internal/models"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// meaning the record already exists. Callers treat it as non-fatal.
var ErrDuplicate = errors.New("repository: record already exists")

// DB is the subset of pgxpool.Pool the repository needs, so tests can
// substitute a mock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements coordinate and address persistence for PostgreSQL
type Repository struct {
	db DB
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// CreateTables creates the two target tables when they do not exist yet.
// Each table is keyed independently on its (latitude, longitude) pair; there
// is no foreign key between them.
func (r *Repository) CreateTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS coordinate_points (
		id BIGSERIAL PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION,
		bearing_degrees DOUBLE PRECISION,
		UNIQUE (latitude, longitude)
	);
	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		street_number VARCHAR(255),
		street_name VARCHAR(255),
		neighborhood VARCHAR(255),
		city VARCHAR(255),
		state VARCHAR(255),
		country VARCHAR(255),
		postal_code VARCHAR(255),
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		UNIQUE (latitude, longitude)
	);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("repository: failed to create tables: %w", err)
	}
	return nil
}

// SaveResolvedAddress inserts the coordinate into coordinate_points and the
// validated address into addresses. The two inserts are independent, not
// wrapped in a transaction, so the coordinate can land without its address
// when the second insert fails. A uniqueness violation on either insert is
// reported as ErrDuplicate.
func (r *Repository) SaveResolvedAddress(ctx context.Context, coordinate models.CoordinateRecord, address models.StructuredAddress) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO coordinate_points (latitude, longitude, distance_km, bearing_degrees)
		VALUES ($1, $2, $3, $4)`,
		coordinate.Latitude,
		coordinate.Longitude,
		coordinate.DistanceKM,
		coordinate.BearingDegrees,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: coordinate insert: %w", ErrDuplicate)
		}
		return fmt.Errorf("repository: failed to insert coordinate: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO addresses (street_number, street_name, neighborhood, city, state, country, postal_code, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		address.StreetNumber,
		address.StreetName,
		address.Neighborhood,
		address.City,
		address.State,
		address.Country,
		address.PostalCode,
		address.Latitude,
		address.Longitude,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: address insert: %w", ErrDuplicate)
		}
		return fmt.Errorf("repository: failed to insert address: %w", err)
	}

	return nil
}

// FindAddress returns the persisted address matching the exact coordinate
// pair, or nil when the pair was never converted.
func (r *Repository) FindAddress(ctx context.Context, latitude, longitude float64) (*models.Address, error) {
	sql := `
		SELECT
			id,
			street_number,
			street_name,
			neighborhood,
			city,
			state,
			country,
			postal_code,
			latitude,
			longitude
		FROM addresses
		WHERE latitude = $1 AND longitude = $2
		LIMIT 1
	`

	var addr models.Address
	err := r.db.QueryRow(ctx, sql, latitude, longitude).Scan(
		&addr.ID,
		&addr.StreetNumber,
		&addr.StreetName,
		&addr.Neighborhood,
		&addr.City,
		&addr.State,
		&addr.Country,
		&addr.PostalCode,
		&addr.Latitude,
		&addr.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to find address: %w", err)
	}

	return &addr, nil
}

// SearchAddresses performs a text search on street name and city.
func (r *Repository) SearchAddresses(ctx context.Context, query string) ([]models.Address, error) {
	sql := `
		SELECT
			id,
			street_number,
			street_name,
			neighborhood,
			city,
			state,
			country,
			postal_code,
			latitude,
			longitude
		FROM addresses
		WHERE street_name ILIKE '%' || $1 || '%'
		   OR city ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT 10
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var addr models.Address
		err := rows.Scan(
			&addr.ID,
			&addr.StreetNumber,
			&addr.StreetName,
			&addr.Neighborhood,
			&addr.City,
			&addr.State,
			&addr.Country,
			&addr.PostalCode,
			&addr.Latitude,
			&addr.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
