package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/repo"
)

// Session owns the in-memory destination collection for one identity, for
// the lifetime of that identity's login. The collection mirrors persisted
// state: it is only mutated after the corresponding repo call has succeeded,
// never optimistically, so a failed write can never leave a ghost entry.
//
// On identity change the session is closed and a new one opened — collections
// are discarded wholesale, never merged across identities. A closed session
// drops late-arriving repo responses instead of applying them.
type Session struct {
	svc      *DestinationService
	identity domain.Identity
	repo     repo.DestinationRepo

	mu     sync.Mutex
	dests  []domain.Destination
	closed bool
}

// Open starts a session for identity and loads its collection.
//
// The load is fail-soft: a remote read failure logs a warning and yields an
// empty collection instead of an error, so the caller is never stuck on an
// unreadable state — it sees "no destinations" and can Reload.
func (s *DestinationService) Open(ctx context.Context, identity domain.Identity) *Session {
	sess := &Session{
		svc:      s,
		identity: identity,
		repo:     s.repoFor(identity),
	}
	sess.Reload(ctx)
	return sess
}

// Identity returns the identity this session belongs to.
func (sess *Session) Identity() domain.Identity {
	return sess.identity
}

// Reload re-fetches the collection from the persistence path, fail-soft.
// A fetch error leaves an empty collection; a reload of a closed session is
// a no-op.
func (sess *Session) Reload(ctx context.Context) {
	dests, err := sess.repo.ListByOwner(ctx, sess.identity.ID)
	if err != nil {
		sess.svc.log.Warn("destination load failed, starting empty",
			"owner", sess.identity.ID, "error", err)
		dests = nil
	}
	if dests == nil {
		dests = []domain.Destination{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return
	}
	sess.dests = dests
}

// List returns a copy of the collection, newest-created first.
// Callers may mutate the returned slice freely.
func (sess *Session) List() []domain.Destination {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.Destination, len(sess.dests))
	copy(out, sess.dests)
	return out
}

// Create validates and persists a new destination, then inserts it at the
// head of the collection so list order stays newest-first without a reload.
//
// The returned record's Photos are exactly the submitted payloads, in order —
// the persistence round-trip is never allowed to drop or reorder them.
// Returns domain.ErrValidation before any repo call on invalid input.
func (sess *Session) Create(ctx context.Context, data domain.CreateDestinationData) (domain.Destination, error) {
	if err := sess.svc.validateInput(data.Name, data.Country, data.Lat, data.Lng, data.Status, data.Photos); err != nil {
		return domain.Destination{}, err
	}

	created, err := sess.repo.Create(ctx, sess.identity.ID, data)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Session.Create: %w", err)
	}
	created.Photos = clonePhotos(data.Photos)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return domain.Destination{}, ErrSessionClosed
	}
	sess.dests = append([]domain.Destination{created}, sess.dests...)
	return created, nil
}

// Update validates and persists a whole-record update, then replaces the
// collection entry in place — position is preserved, unlike Create.
//
// Every mutable field in data overwrites the stored value; callers merging a
// partial edit must carry the untouched fields forward themselves.
// An update addressed at a record the identity does not own affects zero
// rows and returns domain.ErrNotFound.
func (sess *Session) Update(ctx context.Context, id string, data domain.UpdateDestinationData) (domain.Destination, error) {
	if err := sess.svc.validateInput(data.Name, data.Country, data.Lat, data.Lng, data.Status, data.Photos); err != nil {
		return domain.Destination{}, err
	}

	updated, err := sess.repo.Update(ctx, sess.identity.ID, id, data)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, fmt.Errorf("service.Session.Update: %w", err)
	}
	updated.Photos = clonePhotos(data.Photos)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return domain.Destination{}, ErrSessionClosed
	}
	for i := range sess.dests {
		if sess.dests[i].ID == id {
			sess.dests[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes a destination, scoped to the owning identity.
// Deleting an id that no longer exists is idempotent: the repo's not-found is
// swallowed and the collection is left as is. Transport failures propagate
// and leave the collection untouched so the caller can retry.
func (sess *Session) Delete(ctx context.Context, id string) error {
	if err := sess.repo.Delete(ctx, sess.identity.ID, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.Session.Delete: %w", err)
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return ErrSessionClosed
	}
	for i := range sess.dests {
		if sess.dests[i].ID == id {
			sess.dests = append(sess.dests[:i], sess.dests[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID looks up a single destination, scoped to the owning identity.
// Not-found comes back as domain.ErrNotFound; a transport failure propagates
// as an error so the two outcomes are never conflated.
func (sess *Session) GetByID(ctx context.Context, id string) (domain.Destination, error) {
	d, err := sess.repo.GetByID(ctx, sess.identity.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, fmt.Errorf("service.Session.GetByID: %w", err)
	}
	return d, nil
}

// Close tears the session down. Operations still in flight find the session
// closed when they try to apply their result and discard it; the collection
// is released and never consulted again.
func (sess *Session) Close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.closed = true
	sess.dests = nil
}

// clonePhotos returns an independent copy of the submitted photo payloads.
// The stored record must reflect exactly what was submitted even if the
// caller reuses its slice afterwards.
func clonePhotos(photos []string) []string {
	out := make([]string, len(photos))
	copy(out, photos)
	return out
}
