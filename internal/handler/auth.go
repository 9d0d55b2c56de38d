package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mboehm/travellog/internal/domain"
)

// ctxKey is an unexported context key type so values set here can never
// collide with another package's keys.
type ctxKey int

const sessionKey ctxKey = iota

// loginRequest is the POST /login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the bearer token and the resolved identity.
type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// handleLogin resolves credentials, opens a store session for the identity,
// and issues a bearer token bound to it.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request body is required")
		return
	}

	identity, err := s.resolver.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeUnauthorized(w, "invalid email or password")
			return
		}
		s.log.Error("login failed", "error", err)
		writeInternal(w)
		return
	}

	sess := s.opener.Open(r.Context(), identity)
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: identity})
}

// handleLogout closes the store session, revokes the token, and lets the
// resolver do its teardown (full demo-data wipe for the demo identity).
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	token := bearerToken(r)

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	sess.Close()
	if err := s.resolver.Logout(r.Context(), sess.Identity()); err != nil {
		s.log.Error("logout teardown failed", "error", err)
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMe returns the identity bound to the presented token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Identity())
}

// requireSession resolves the bearer token to a store session and stashes it
// in the request context. Missing or unknown tokens get 401.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		s.mu.Lock()
		sess, ok := s.sessions[token]
		s.mu.Unlock()
		if !ok {
			writeUnauthorized(w, "session expired or unknown")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// sessionFrom returns the store session placed in ctx by requireSession.
// Only call it from handlers behind that middleware.
func sessionFrom(ctx context.Context) StoreSession {
	return ctx.Value(sessionKey).(StoreSession)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
