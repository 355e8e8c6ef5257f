package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength selects the validation level applied by Validate.
// It mirrors the service configuration's password_policy_strength values.
type Strength string

const (
	// StrengthMin requires only the minimum length.
	StrengthMin Strength = "min"
	// StrengthMax additionally requires one uppercase letter and one digit.
	StrengthMax Strength = "max"
)

// ParseStrength normalizes a raw strength value; unknown values fall back to min.
func ParseStrength(s string) Strength {
	if Strength(strings.ToLower(strings.TrimSpace(s))) == StrengthMax {
		return StrengthMax
	}
	return StrengthMin
}

// Validate checks the password against the policy at the given strength.
// It does not mutate input.
func (c Config) Validate(password string, strength Strength) error {
	// Count characters (runes), not bytes, to be user-friendly.
	n := utf8.RuneCountInString(password)

	if n < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	// bcrypt operates on bytes, so the upper bound is byte-based.
	if len(password) > c.Policy.MaxLength {
		return ErrPasswordTooLong
	}

	if strength == StrengthMax {
		var hasUpper, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasUpper || !hasDigit {
			return ErrWeakPassword
		}
	}

	return nil
}
