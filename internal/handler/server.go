// Package handler implements the HTTP surface of the travel log API.
// Handlers are methods on Server, split into domain-specific files
// (auth.go, destination.go, etc.) that all share the same struct.
package handler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/geo"
	"github.com/mboehm/travellog/internal/stats"
)

// IdentityResolver defines the auth operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a fake resolver without touching the real auth wiring.
type IdentityResolver interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Logout(ctx context.Context, identity domain.Identity) error
}

// StoreSession is the per-identity destination store the handler drives.
// service.Session satisfies it.
type StoreSession interface {
	Identity() domain.Identity
	List() []domain.Destination
	Reload(ctx context.Context)
	Create(ctx context.Context, data domain.CreateDestinationData) (domain.Destination, error)
	Update(ctx context.Context, id string, data domain.UpdateDestinationData) (domain.Destination, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Destination, error)
	Close()
}

// SessionOpener opens a destination store session for an identity.
type SessionOpener interface {
	Open(ctx context.Context, identity domain.Identity) StoreSession
}

// SessionOpenerFunc adapts a function to the SessionOpener interface, the
// usual trick for wiring a concrete-returning constructor to an interface.
type SessionOpenerFunc func(ctx context.Context, identity domain.Identity) StoreSession

func (f SessionOpenerFunc) Open(ctx context.Context, identity domain.Identity) StoreSession {
	return f(ctx, identity)
}

// GeoSearcher is the location-search collaborator consumed by the geocode
// proxy endpoint.
type GeoSearcher interface {
	Search(ctx context.Context, query string) ([]geo.Place, error)
}

// Server holds the handler dependencies and the live API sessions.
// One API token maps to one open store session; the token is issued at login
// and dies at logout.
type Server struct {
	resolver IdentityResolver
	opener   SessionOpener
	agg      *stats.Aggregator
	geo      GeoSearcher
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]StoreSession
}

// NewServer constructs the Server with all its dependencies.
func NewServer(resolver IdentityResolver, opener SessionOpener, agg *stats.Aggregator, geo GeoSearcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		resolver: resolver,
		opener:   opener,
		agg:      agg,
		geo:      geo,
		log:      log,
		sessions: make(map[string]StoreSession),
	}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
		r.Get("/stats", s.handleStats)
		r.Get("/geocode", s.handleGeocode)
		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", s.handleListDestinations)
			r.Post("/", s.handleCreateDestination)
			r.Get("/{id}", s.handleGetDestination)
			r.Put("/{id}", s.handleUpdateDestination)
			r.Delete("/{id}", s.handleDeleteDestination)
		})
	})

	return r
}
