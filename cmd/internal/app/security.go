package app

import (
	"crypto/rand"
	"errors"
)

const minJWTSecretBytes = 32

// ValidateSecurityConfig enforces the startup security policy.
//
// Fail-fast: production deployments set FASTUSERS_REQUIRE_JWT_SECRET=true and
// must carry a signing key of at least 32 bytes (measured as raw bytes, not
// runes).
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireJWTSecret {
		return nil
	}
	if cfg.JWTSecret == "" {
		return errors.New("security policy: FASTUSERS_REQUIRE_JWT_SECRET=true but FASTUSERS_JWT_SECRET is missing")
	}
	if len(cfg.JWTSecret) < minJWTSecretBytes {
		return errors.New("security policy: FASTUSERS_REQUIRE_JWT_SECRET=true but FASTUSERS_JWT_SECRET is too short (min 32 bytes)")
	}
	return nil
}

// resolveJWTSecret returns the configured signing key, generating an ephemeral
// one for dev runs without a configured secret. Ephemeral keys invalidate all
// tokens on restart.
func resolveJWTSecret(cfg Config, log Logger) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	if cfg.RequireJWTSecret {
		return nil, errors.New("jwt secret required but not configured")
	}

	key := make([]byte, minJWTSecretBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	log.Warn("jwt.secret.ephemeral", "hint", "set FASTUSERS_JWT_SECRET to keep tokens valid across restarts")
	return key, nil
}
