package auth

import "errors"

var (
	// ErrMissingToken is returned when no bearer token can be extracted
	// from the request.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when a token does not resolve to an actor.
	ErrInvalidToken = errors.New("invalid token")
)
