package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// errorResponse is the JSON error envelope for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// ignored: the status line has already been written and there is nothing
// useful left to do.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeNotFound responds 404 with the caller-supplied message — the handler
// is the layer that knows what was being looked up.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{Code: "not_found", Message: message}})
}

// writeValidation responds 422 with the human-readable part of a wrapped
// domain.ErrValidation.
func writeValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
	})
}

// writeBadRequest responds 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// writeUnauthorized responds 401.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error: errorDetail{Code: "unauthenticated", Message: message},
	})
}

// writeInternal responds 500 without leaking error detail to the client.
func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: name: cannot be blank." → "name: cannot be blank."
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
