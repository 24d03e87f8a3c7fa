package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// Verifier derives a stable subject identifier from a caller's access token.
// Tokens are HS256 JWTs issued by the auth platform; signature and expiry are
// checked against the configured secret before the sub claim is trusted.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Subject parses and verifies the token and returns its sub claim.
// Any malformed token (wrong segment count, bad base64, bad JSON), wrong
// algorithm, bad signature, expired token, or missing sub claim yields
// model.ErrUnauthenticated.
func (v *Verifier) Subject(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("%w: cannot read user from token: %v", model.ErrUnauthenticated, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: token has no sub claim", model.ErrUnauthenticated)
	}
	return sub, nil
}
