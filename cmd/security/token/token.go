package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 30 * time.Minute

// Claims is the identity envelope carried by an access token.
type Claims struct {
	Username  string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Config defines signing parameters for the manager.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte

	// TTL is the access token lifetime (default 30 minutes).
	TTL time.Duration

	// Issuer is set in the "iss" claim. Informational; not enforced on verify.
	Issuer string
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	cfg Config
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// NewManager builds a Manager from config, applying the default TTL when unset.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrConfig
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Manager{cfg: cfg}, nil
}

// TTL reports the configured access token lifetime.
func (m *Manager) TTL() time.Duration { return m.cfg.TTL }

// Issue creates a signed access token for the given user.
func (m *Manager) Issue(username, userID string, now time.Time) (string, time.Time, error) {
	if username == "" || userID == "" {
		return "", time.Time{}, ErrMissingClaims
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	exp := now.Add(m.cfg.TTL)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    m.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses and validates an access token.
//
// For a token whose signature is valid but whose exp has passed, Verify returns
// the decoded claims together with ErrTokenExpired so the caller can decide
// whether the configured grace policy applies.
func (m *Manager) Verify(tokenString string, now time.Time) (Claims, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var ac accessClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&ac,
		func(_ *jwt.Token) (any, error) { return m.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Expired is reported only after the signature checked out.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			claims, cerr := claimsFrom(ac)
			if cerr != nil {
				return Claims{}, cerr
			}
			return claims, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	return claimsFrom(ac)
}

func claimsFrom(ac accessClaims) (Claims, error) {
	if ac.Subject == "" || ac.UserID == "" || ac.ExpiresAt == nil {
		return Claims{}, ErrMissingClaims
	}

	claims := Claims{
		Username:  ac.Subject,
		UserID:    ac.UserID,
		ExpiresAt: ac.ExpiresAt.Time,
	}
	if ac.IssuedAt != nil {
		claims.IssuedAt = ac.IssuedAt.Time
	}
	return claims, nil
}
