package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// ExtractBearer extracts the access token from the Authorization header.
// Returns model.ErrUnauthenticated when the header is missing or not of the
// form "Bearer <token>".
func ExtractBearer(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: missing Authorization header", model.ErrUnauthenticated)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("%w: invalid Authorization header format, expected 'Bearer <token>'", model.ErrUnauthenticated)
	}

	return parts[1], nil
}
