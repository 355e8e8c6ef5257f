// Package token issues and verifies the HS256 JWT access tokens used by fastusers.
//
// Tokens carry the claims sub (username), id (user ID), exp and iat. Verification
// distinguishes authentic-but-expired tokens (ErrTokenExpired, claims still
// returned) from invalid ones, because the service configuration may allow an
// expired token to be honored when jwt_auto_refresh is enabled.
package token
