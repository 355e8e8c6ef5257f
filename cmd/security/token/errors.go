package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrInvalidToken is returned when a token fails signature or structural checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for tokens with a valid signature whose exp has passed.
	// Claims are still returned alongside it so callers can apply grace policies.
	ErrTokenExpired = errors.New("token expired")

	// ErrMissingClaims is returned when sub, id or exp are absent.
	ErrMissingClaims = errors.New("missing required claims")

	// ErrConfig is returned for invalid manager configuration.
	ErrConfig = errors.New("invalid token config")
)
