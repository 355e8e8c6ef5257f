// Package password provides password hashing and policy validation for fastusers.
//
// It implements bcrypt hashing and a two-level strength policy:
// - StrengthMin: at least 8 characters
// - StrengthMax: at least 8 characters, one uppercase letter and one digit
//
// The effective strength is selected per request from the service configuration
// resource, so Validate takes the strength explicitly instead of baking it into
// the package config.
package password
