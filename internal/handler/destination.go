package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/service"
	"github.com/mboehm/travellog/internal/view"
)

// handleListDestinations handles GET /destinations.
// An optional ?status=visited|wishlist query narrows the result through the
// view projector; without it the full collection is returned, newest first.
func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var filter *domain.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.Status(raw)
		if !st.Valid() {
			writeBadRequest(w, "status must be visited or wishlist")
			return
		}
		filter = &st
	}

	writeJSON(w, http.StatusOK, view.Project(sess.List(), filter))
}

// handleCreateDestination handles POST /destinations.
func (s *Server) handleCreateDestination(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var data domain.CreateDestinationData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeBadRequest(w, "request body is required")
		return
	}

	created, err := sess.Create(r.Context(), data)
	if err != nil {
		s.writeDestinationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleGetDestination handles GET /destinations/{id}.
func (s *Server) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	d, err := sess.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDestinationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleUpdateDestination handles PUT /destinations/{id}.
// The body must carry the full set of mutable fields; this is a
// whole-record update, not a patch.
func (s *Server) handleUpdateDestination(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var data domain.UpdateDestinationData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeBadRequest(w, "request body is required")
		return
	}

	updated, err := sess.Update(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		s.writeDestinationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteDestination handles DELETE /destinations/{id}.
// Deleting an already-deleted destination succeeds: the operation is
// idempotent by contract.
func (s *Server) handleDeleteDestination(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := sess.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeDestinationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStats handles GET /stats: aggregate statistics over the full
// collection, recomputed per request.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	writeJSON(w, http.StatusOK, s.agg.Summarize(sess.List()))
}

// writeDestinationError maps store errors to HTTP responses.
func (s *Server) writeDestinationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, "destination not found")
	case errors.Is(err, service.ErrSessionClosed):
		writeUnauthorized(w, "session closed")
	default:
		s.log.Error("destination operation failed", "error", err)
		writeInternal(w)
	}
}
