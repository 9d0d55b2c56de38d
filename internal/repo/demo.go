package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/localstore"
)

// demoDestinationRepo is the demo-mode implementation of DestinationRepo.
// Records live in a single JSON blob in the local store, in creation order;
// ids and timestamps are synthesized locally. Nothing here ever touches the
// network, which is the whole point of the demo identity.
type demoDestinationRepo struct {
	store *localstore.Store

	// now is swapped out in tests to get deterministic ids and timestamps.
	now func() time.Time
}

// NewDemoDestinationRepo constructs a DestinationRepo over the local store.
func NewDemoDestinationRepo(store *localstore.Store) DestinationRepo {
	return &demoDestinationRepo{store: store, now: time.Now}
}

// ListByOwner returns the stored records newest-created first. The blob is
// kept in creation order, so reversing it gives the list contract for free.
func (r *demoDestinationRepo) ListByOwner(_ context.Context, owner uuid.UUID) ([]domain.Destination, error) {
	all, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("repo.demoDestinationRepo.ListByOwner: %w", err)
	}

	var dests []domain.Destination
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].OwnerID == owner {
			dests = append(dests, all[i])
		}
	}
	return dests, nil
}

// Create appends a new record with a time-based id and local timestamps.
func (r *demoDestinationRepo) Create(_ context.Context, owner uuid.UUID, data domain.CreateDestinationData) (domain.Destination, error) {
	all, err := r.load()
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.Create: %w", err)
	}

	now := r.now().UTC()
	d := domain.Destination{
		ID:        fmt.Sprintf("demo-%d", now.UnixNano()),
		OwnerID:   owner,
		Name:      data.Name,
		Country:   data.Country,
		Lat:       data.Lat,
		Lng:       data.Lng,
		Status:    data.Status,
		Date:      data.Date,
		Notes:     data.Notes,
		Photos:    photosOrEmpty(data.Photos),
		CreatedAt: now,
		UpdatedAt: now,
	}

	all = append(all, d)
	if err := r.store.Put(localstore.KeyDestinations, all); err != nil {
		return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.Create: %w", err)
	}
	return d, nil
}

// GetByID retrieves a stored record by id, scoped to the owner.
func (r *demoDestinationRepo) GetByID(_ context.Context, owner uuid.UUID, id string) (domain.Destination, error) {
	all, err := r.load()
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.GetByID: %w", err)
	}
	for _, d := range all {
		if d.ID == id && d.OwnerID == owner {
			return d, nil
		}
	}
	return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.GetByID: %w", domain.ErrNotFound)
}

// Update overwrites the mutable fields of a stored record in place,
// preserving its position in the blob and its created_at.
func (r *demoDestinationRepo) Update(_ context.Context, owner uuid.UUID, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
	all, err := r.load()
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.Update: %w", err)
	}

	for i, d := range all {
		if d.ID != id || d.OwnerID != owner {
			continue
		}
		d.Name = data.Name
		d.Country = data.Country
		d.Lat = data.Lat
		d.Lng = data.Lng
		d.Status = data.Status
		d.Date = data.Date
		d.Notes = data.Notes
		d.Photos = photosOrEmpty(data.Photos)
		d.UpdatedAt = r.now().UTC()

		all[i] = d
		if err := r.store.Put(localstore.KeyDestinations, all); err != nil {
			return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.Update: %w", err)
		}
		return d, nil
	}
	return domain.Destination{}, fmt.Errorf("repo.demoDestinationRepo.Update: %w", domain.ErrNotFound)
}

// Delete removes a stored record by id, scoped to the owner.
func (r *demoDestinationRepo) Delete(_ context.Context, owner uuid.UUID, id string) error {
	all, err := r.load()
	if err != nil {
		return fmt.Errorf("repo.demoDestinationRepo.Delete: %w", err)
	}

	for i, d := range all {
		if d.ID != id || d.OwnerID != owner {
			continue
		}
		all = append(all[:i], all[i+1:]...)
		if err := r.store.Put(localstore.KeyDestinations, all); err != nil {
			return fmt.Errorf("repo.demoDestinationRepo.Delete: %w", err)
		}
		return nil
	}
	return fmt.Errorf("repo.demoDestinationRepo.Delete: %w", domain.ErrNotFound)
}

// load reads the destination blob; an unwritten key is an empty collection.
func (r *demoDestinationRepo) load() ([]domain.Destination, error) {
	var all []domain.Destination
	if _, err := r.store.Get(localstore.KeyDestinations, &all); err != nil {
		return nil, err
	}
	return all, nil
}
