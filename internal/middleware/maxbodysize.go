package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. Destination payloads carry inline-encoded
// photos, so the cap has to be generous but still bounded.
//
// Requests advertising a Content-Length over the limit are rejected with 413
// before any body bytes are read. Bodies without a Content-Length are wrapped
// in http.MaxBytesReader, so the downstream JSON decode fails once the limit
// is crossed and the handler surfaces 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge),
					http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
