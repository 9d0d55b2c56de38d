// Package repo contains the persistence implementations for destinations.
// The remote path is Postgres; the demo path is a local JSON store.
// No business logic lives here — only storage access and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mboehm/travellog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DestinationRepo defines the persistence operations for destinations.
// Every operation is scoped by the owning identity: a row belonging to a
// different owner behaves exactly like a row that does not exist.
type DestinationRepo interface {
	// ListByOwner returns all destinations owned by owner, newest-created first.
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Destination, error)

	// Create inserts a new destination for owner and returns the persisted
	// record with id and timestamps populated. The returned Photos must be
	// exactly what was submitted, byte for byte and in order.
	Create(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error)

	// GetByID retrieves a single destination by id, scoped to owner.
	// Returns domain.ErrNotFound if no such row exists under that owner.
	GetByID(ctx context.Context, owner uuid.UUID, id string) (domain.Destination, error)

	// Update overwrites every mutable field of the destination and returns the
	// updated record. Returns domain.ErrNotFound if no such row exists under
	// that owner — an update addressed at someone else's row touches nothing.
	Update(ctx context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error)

	// Delete removes a destination by id, scoped to owner.
	// Returns domain.ErrNotFound if no such row exists under that owner.
	Delete(ctx context.Context, owner uuid.UUID, id string) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, owner_id, name, country, lat, lng, status, visit_date, notes, photos, created_at, updated_at`

// ListByOwner returns all rows for the owner, newest-created first.
func (r *pgDestinationRepo) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM locations
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": owner})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var dests []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByOwner: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByOwner: rows: %w", err)
	}

	return dests, nil
}

// Create inserts a new row and returns the full persisted record.
func (r *pgDestinationRepo) Create(ctx context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
	const q = `
		INSERT INTO locations (owner_id, name, country, lat, lng, status, visit_date, notes, photos)
		VALUES (@owner_id, @name, @country, @lat, @lng, @status, @visit_date, @notes, @photos)
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"owner_id":   owner,
		"name":       data.Name,
		"country":    data.Country,
		"lat":        data.Lat,
		"lng":        data.Lng,
		"status":     string(data.Status),
		"visit_date": data.Date, // nil becomes NULL
		"notes":      data.Notes,
		"photos":     photosOrEmpty(data.Photos),
	})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a row by id, scoped to the owner.
func (r *pgDestinationRepo) GetByID(ctx context.Context, owner uuid.UUID, id string) (domain.Destination, error) {
	rowID, err := uuid.Parse(id)
	if err != nil {
		// A non-uuid id cannot exist remotely (demo ids never reach this repo).
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", domain.ErrNotFound)
	}

	const q = `
		SELECT ` + destinationColumns + `
		FROM locations
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": rowID, "owner_id": owner})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a row and returns the updated record.
// The WHERE clause carries both id and owner_id, so a mismatched owner
// affects zero rows and surfaces as not found.
func (r *pgDestinationRepo) Update(ctx context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
	rowID, err := uuid.Parse(id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", domain.ErrNotFound)
	}

	const q = `
		UPDATE locations
		SET name       = @name,
		    country    = @country,
		    lat        = @lat,
		    lng        = @lng,
		    status     = @status,
		    visit_date = @visit_date,
		    notes      = @notes,
		    photos     = @photos,
		    updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":         rowID,
		"owner_id":   owner,
		"name":       data.Name,
		"country":    data.Country,
		"lat":        data.Lat,
		"lng":        data.Lng,
		"status":     string(data.Status),
		"visit_date": data.Date,
		"notes":      data.Notes,
		"photos":     photosOrEmpty(data.Photos),
	})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a row by id, scoped to the owner.
func (r *pgDestinationRepo) Delete(ctx context.Context, owner uuid.UUID, id string) error {
	rowID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}

	const q = `DELETE FROM locations WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": rowID, "owner_id": owner})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanDestination
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanDestination maps a single database row into a domain.Destination.
// It handles the UUID, nullable visit_date, and text[] photo conversions.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d         domain.Destination
		id        pgtype.UUID
		owner     pgtype.UUID
		visitDate pgtype.Text
		photos    []string
	)

	err := s.Scan(&id, &owner, &d.Name, &d.Country, &d.Lat, &d.Lng, &d.Status,
		&visitDate, &d.Notes, &photos, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes).String()
	d.OwnerID = uuid.UUID(owner.Bytes)
	if visitDate.Valid {
		vd := visitDate.String
		d.Date = &vd
	}
	d.Photos = photosOrEmpty(photos)

	return d, nil
}

// photosOrEmpty normalizes a nil photo slice to an empty one so callers never
// see null where the data model promises an array.
func photosOrEmpty(photos []string) []string {
	if photos == nil {
		return []string{}
	}
	return photos
}
