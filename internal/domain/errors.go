package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// destination does not exist under the given owner.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, too many photos).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned by the identity resolver when credentials
// are wrong or no session can be resumed. Callers must treat this as a
// normal outcome, not a failure: the UI simply shows the login screen.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")
