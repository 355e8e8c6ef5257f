package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// DatabaseURL points at Postgres. Empty means the in-memory SQLite
	// backend (dev/test mode; data does not survive a restart).
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// CORSAllowedOrigins is empty for allow-all (the historical default).
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int

	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string

	AdminID       string
	AdminUsername string
	AdminPassword string

	// If true:
	// - /readyz returns 503 unless the database is reachable.
	ReadinessRequireDB bool

	// Security policy:
	// If true, FASTUSERS_JWT_SECRET MUST be set (>= 32 bytes).
	RequireJWTSecret bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("FASTUSERS_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("FASTUSERS_LOG_LEVEL", "info"),
		LogFormat: EnvString("FASTUSERS_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("FASTUSERS_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("FASTUSERS_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("FASTUSERS_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("FASTUSERS_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("FASTUSERS_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL:       EnvString("FASTUSERS_DATABASE_URL", ""),
		DBMaxOpenConns:    EnvInt("FASTUSERS_DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    EnvInt("FASTUSERS_DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: EnvDuration("FASTUSERS_DB_CONN_MAX_LIFETIME", 30*time.Minute),

		CORSAllowedOrigins:   EnvStringSlice("FASTUSERS_CORS_ALLOWED_ORIGINS", nil),
		CORSAllowCredentials: EnvBool("FASTUSERS_CORS_ALLOW_CREDENTIALS", false),
		CORSMaxAgeSeconds:    EnvInt("FASTUSERS_CORS_MAX_AGE_SECONDS", 600),

		JWTSecret: EnvString("FASTUSERS_JWT_SECRET", ""),
		JWTTTL:    EnvDuration("FASTUSERS_JWT_TTL", 30*time.Minute),
		JWTIssuer: EnvString("FASTUSERS_JWT_ISSUER", "fastusers"),

		AdminID:       EnvString("FASTUSERS_ADMIN_ID", "admin"),
		AdminUsername: EnvString("FASTUSERS_ADMIN_USERNAME", "admin"),
		AdminPassword: EnvString("FASTUSERS_ADMIN_PASSWORD", ""),

		ReadinessRequireDB: EnvBool("FASTUSERS_READINESS_REQUIRE_DB", false),

		RequireJWTSecret: EnvBool("FASTUSERS_REQUIRE_JWT_SECRET", false),
	}
}
