package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (or belongs to a different owner).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty text, too many categories, duplicate name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a request carries no valid session or the
// session has expired. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
