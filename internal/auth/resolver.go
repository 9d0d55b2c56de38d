// Package auth resolves session credentials into an Identity.
// It special-cases the reserved demo identity: fixed credentials bypass the
// external authenticator and persist to the local store so the identity
// survives a restart without re-authenticating.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/localstore"
)

// Fixed demo credentials. Supplying both bypasses the Authenticator entirely.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
)

// Authenticator is the external auth collaborator. Implementations verify
// real credentials and track the current session; the resolver never sees
// passwords for any account other than the demo one.
type Authenticator interface {
	// SignIn verifies credentials and returns the identity.
	// Returns domain.ErrUnauthenticated on bad credentials.
	SignIn(ctx context.Context, email, password string) (domain.Identity, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// CurrentSession returns the identity of the active session.
	// Returns domain.ErrUnauthenticated when there is none.
	CurrentSession(ctx context.Context) (domain.Identity, error)
}

// Resolver turns credentials (or stored markers) into identities.
type Resolver struct {
	auth    Authenticator
	store   *localstore.Store
	timeout time.Duration
	log     *slog.Logger
}

// NewResolver constructs a Resolver. timeout bounds the session check in
// Resume so a slow authenticator can never wedge startup; zero or negative
// falls back to 3 seconds.
func NewResolver(auth Authenticator, store *localstore.Store, timeout time.Duration, log *slog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{auth: auth, store: store, timeout: timeout, log: log}
}

// Login resolves credentials into an identity.
//
// The demo credential pair short-circuits to the reserved demo identity and
// writes the identity marker to the local store; everything else goes through
// the external authenticator. Bad credentials come back as
// domain.ErrUnauthenticated, which callers treat as a normal outcome.
func (r *Resolver) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == DemoEmail && password == DemoPassword {
		identity := demoIdentity()
		if err := r.store.Put(localstore.KeyIdentity, identity); err != nil {
			return domain.Identity{}, fmt.Errorf("auth.Resolver.Login: persist demo identity: %w", err)
		}
		return identity, nil
	}

	identity, err := r.auth.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("auth.Resolver.Login: %w", err)
	}
	return identity, nil
}

// Resume restores an identity without fresh credentials.
//
// The stored demo marker wins: a demo session survives a restart without ever
// touching the authenticator. Otherwise the authenticator's current session
// is checked under a bounded wait; a timeout or any failure yields
// unauthenticated rather than an error, so startup can never hang on auth.
func (r *Resolver) Resume(ctx context.Context) (domain.Identity, bool) {
	var stored domain.Identity
	ok, err := r.store.Get(localstore.KeyIdentity, &stored)
	if err != nil {
		r.log.Warn("stored identity unreadable, ignoring", "error", err)
	} else if ok && stored.IsDemo() {
		return stored, true
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	identity, err := r.auth.CurrentSession(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthenticated) {
			r.log.Warn("session check failed, assuming unauthenticated", "error", err)
		}
		return domain.Identity{}, false
	}
	return identity, true
}

// Logout ends the session for the given identity.
//
// For the demo identity the local store is wiped in full: the identity marker
// and the demo destination blob go together, never separately. For real
// accounts the external authenticator is signed out.
func (r *Resolver) Logout(ctx context.Context, identity domain.Identity) error {
	if identity.IsDemo() {
		if err := r.store.Wipe(); err != nil {
			return fmt.Errorf("auth.Resolver.Logout: %w", err)
		}
		return nil
	}
	if err := r.auth.SignOut(ctx); err != nil {
		return fmt.Errorf("auth.Resolver.Logout: %w", err)
	}
	return nil
}

// demoIdentity builds the reserved demo identity record.
func demoIdentity() domain.Identity {
	return domain.Identity{
		ID:        domain.DemoIdentityID,
		Email:     DemoEmail,
		Name:      "Demo User",
		CreatedAt: time.Now().UTC(),
	}
}
