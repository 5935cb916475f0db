package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// ExtractToken pulls the bearer token from the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("%w: expected 'Bearer <token>'", ErrMissingToken)
	}
	return parts[1], nil
}
