package handler

import "net/http"

// handleGeocode handles GET /geocode?q=. It proxies the location-search
// collaborator so the browser never talks to Nominatim directly (and the
// API key / user-agent policy stays server-side).
func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeBadRequest(w, "q is required")
		return
	}

	places, err := s.geo.Search(r.Context(), query)
	if err != nil {
		s.log.Error("geocode search failed", "query", query, "error", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, places)
}
