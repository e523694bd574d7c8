package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, duplicate status name).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when the acting user lacks the role a mutation
// requires (e.g. a reply from a user who is neither admin nor staff-member).
// Handlers should map this to HTTP 403.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned by repo functions when an insert violates a unique
// constraint (e.g. a tracking number that lost the creation race).
// The quote service retries creation with a fresh tracking number on it.
var ErrConflict = errors.New("conflict")

// ErrInvalidRequest is returned by the quote mutation dispatcher when the
// request body matches none of the recognized shapes.
// Handlers should map this to HTTP 400 with the message "Invalid request".
var ErrInvalidRequest = errors.New("invalid request")
