// Package domain contains the core data types for the travel log application.
// This package is imported by every other internal package (repo, service,
// handler) and depends on nothing beyond uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status classifies a destination: already visited, or still on the wishlist.
type Status string

const (
	StatusVisited  Status = "visited"
	StatusWishlist Status = "wishlist"
)

// Valid reports whether s is one of the two known status values.
func (s Status) Valid() bool {
	return s == StatusVisited || s == StatusWishlist
}

// Destination represents a single place record owned by one identity.
//
// ID is an opaque string: the Postgres repo returns uuid text, the demo repo
// synthesizes "demo-<unix nanos>" ids. Callers must not parse it.
//
// Lat/Lng 0,0 is the "no location selected" sentinel and is never valid for
// a persisted record. This collides with the literal equator/prime-meridian
// point; the ambiguity is inherited from the data model and left as is.
type Destination struct {
	ID        string    `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Status    Status    `json:"status"`
	Date      *string   `json:"date,omitempty"` // "YYYY-MM", only meaningful when visited
	Notes     string    `json:"notes"`
	Photos    []string  `json:"photos"` // data-URL payloads, capped per destination
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDestinationData carries the caller-supplied fields for a new
// destination. ID, owner, and timestamps are assigned by the persistence
// layer, never by the caller.
type CreateDestinationData struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Status  Status   `json:"status"`
	Date    *string  `json:"date,omitempty"`
	Notes   string   `json:"notes"`
	Photos  []string `json:"photos"`
}

// UpdateDestinationData carries the full set of mutable fields for an update.
//
// Updates are whole-record: every field here overwrites the stored value.
// A caller that intends a partial edit must read the current record and carry
// the untouched fields forward itself — omitted (zero) fields are written as
// given, not preserved.
type UpdateDestinationData struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Status  Status   `json:"status"`
	Date    *string  `json:"date,omitempty"`
	Notes   string   `json:"notes"`
	Photos  []string `json:"photos"`
}
