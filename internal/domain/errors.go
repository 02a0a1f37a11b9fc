package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned by service functions when the requesting user is
// not the owner of the resource being mutated.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned by MatchService.Create when duplicate-pair
// protection is enabled and a match between the same two users already exists.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicate = errors.New("duplicate match")
