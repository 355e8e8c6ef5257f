package rest

import (
	"os"
	"strconv"
	"strings"
)

// Config controls API behavior defaults.
type Config struct {
	// MaxBodyBytes caps request bodies accepted by the JSON decoder.
	MaxBodyBytes int64
	// DefaultPageSize is the list "end" value when the query omits it.
	DefaultPageSize int
	// AdminID is the primary key of the bootstrap admin account. The API
	// refuses to update or delete it.
	AdminID string
}

// LoadConfigFromEnv loads API config from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	cfg := Config{
		MaxBodyBytes:    envInt64("FASTUSERS_API_MAX_BODY_BYTES", 1<<20), // 1 MiB
		DefaultPageSize: envInt("FASTUSERS_API_DEFAULT_PAGE_SIZE", 50),
		AdminID:         envString("FASTUSERS_ADMIN_ID", "admin"),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 50
	}
	if strings.TrimSpace(cfg.AdminID) == "" {
		cfg.AdminID = "admin"
	}
	return cfg
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
