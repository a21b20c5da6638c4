package models

import "errors"

// Domain specific errors surfaced by services and mapped to HTTP status in handlers.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")
	ErrMissingDate     = errors.New("activity date is required")
	ErrNoOptions       = errors.New("no options generated")
	ErrStaleGeneration = errors.New("generation superseded by a newer request")
	ErrNotACity        = errors.New("destination is not a recognized city")
)
