// Package service contains the business logic of the travel log.
// The destination store lives here: validation, the choice between the
// remote and demo persistence paths, and the session-scoped in-memory
// collection that mirrors the persisted state.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/image"
	"github.com/mboehm/travellog/internal/repo"
)

// ErrSessionClosed is returned by session operations invoked after Close.
// It marks a late-arriving call against a torn-down identity (e.g. a request
// racing a logout); the response is discarded, never applied.
var ErrSessionClosed = errors.New("session closed")

// Config carries the destination store limits.
type Config struct {
	// MaxPhotos caps the photo array per destination. A batch that would
	// exceed it is rejected as a whole. Canonical value 5.
	MaxPhotos int

	// MaxPhotoBytes caps a single encoded photo payload.
	MaxPhotoBytes int
}

// DestinationService owns the persistence routing for destinations: the
// reserved demo identity goes to the local store, everyone else to Postgres.
// Per-identity state lives in Session, not here.
type DestinationService struct {
	remote repo.DestinationRepo
	demo   repo.DestinationRepo
	cfg    Config
	log    *slog.Logger
}

// NewDestinationService constructs the service over the two persistence paths.
func NewDestinationService(remote, demo repo.DestinationRepo, cfg Config, log *slog.Logger) *DestinationService {
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = 5
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = 5 << 20
	}
	if log == nil {
		log = slog.Default()
	}
	return &DestinationService{remote: remote, demo: demo, cfg: cfg, log: log}
}

// repoFor picks the persistence path for an identity.
func (s *DestinationService) repoFor(identity domain.Identity) repo.DestinationRepo {
	if identity.IsDemo() {
		return s.demo
	}
	return s.remote
}

// validateInput enforces the rules shared by Create and Update. It runs
// before any repo call, so a rejected input never reaches persistence and
// never touches the in-memory collection.
//
// Lat/lng 0,0 means "no location selected" and is rejected; the collision
// with the real equator/prime-meridian point is a known ambiguity of the
// data model, not something this layer second-guesses.
func (s *DestinationService) validateInput(name, country string, lat, lng float64, status domain.Status, photos []string) error {
	err := validation.Errors{
		"name":    validation.Validate(strings.TrimSpace(name), validation.Required),
		"country": validation.Validate(strings.TrimSpace(country), validation.Required),
		"status":  validation.Validate(status, validation.Required, validation.In(domain.StatusVisited, domain.StatusWishlist)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if lat == 0 && lng == 0 {
		return fmt.Errorf("%w: location must be selected", domain.ErrValidation)
	}
	if len(photos) > s.cfg.MaxPhotos {
		return fmt.Errorf("%w: at most %d photos allowed", domain.ErrValidation, s.cfg.MaxPhotos)
	}
	// Whole-batch rule: one bad payload rejects the entire submission, so a
	// destination never ends up with a partial photo set.
	for i, p := range photos {
		if err := image.CheckPayload(p, s.cfg.MaxPhotoBytes); err != nil {
			return fmt.Errorf("%w: photo %d: %s", domain.ErrValidation, i+1, err)
		}
	}
	return nil
}
