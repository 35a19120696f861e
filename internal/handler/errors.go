package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carrotnotes/backend/internal/domain"
)

// errorDetail is the machine-readable part of an error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeDomainError maps a service-layer error to an HTTP response.
//   - *domain.AuthError: 401 for credential failures, 422 otherwise, with the
//     translated message as the body.
//   - domain.ErrValidation: 422 with the human-readable rule that failed.
//   - domain.ErrNotFound: 404 with the supplied resource name.
//   - domain.ErrUnauthorized: 401.
//   - anything else: 500 with a generic body; the cause is logged, not leaked.
func writeDomainError(w http.ResponseWriter, err error, resource string) {
	var authErr *domain.AuthError
	switch {
	case errors.As(err, &authErr):
		status := http.StatusUnprocessableEntity
		if authErr.Code == domain.AuthCodeInvalidCredential || authErr.Code == domain.AuthCodeInvalidPassword {
			status = http.StatusUnauthorized
		}
		writeError(w, status, authErr.Code, authErr.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "a valid session token is required")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong, please try again")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.CategoryService.Add: validation error: you cannot add
// more than 7 categories" → "you cannot add more than 7 categories".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
