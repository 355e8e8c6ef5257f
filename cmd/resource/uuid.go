package resource

import "github.com/google/uuid"

// NewID returns a new random UUIDv4 string, the primary key format for all
// resources except the bootstrap admin (whose ID is configured).
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
