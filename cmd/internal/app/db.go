package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// OpenDB opens the database behind the store and validates connectivity.
// An empty DatabaseURL selects the in-memory SQLite backend.
// Schema management is a startup CreateTable IfNotExists; there is no
// migration tooling.
func OpenDB(ctx context.Context, cfg Config, log Logger) (*bun.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.sqlite.inmemory")

		sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
		if err != nil {
			return nil, err
		}
		// A single connection keeps the shared in-memory database alive.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	}

	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	if err := PingDB(ctx, db, 3*time.Second); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("db.postgres")
	return db, nil
}

// PingDB checks connectivity within timeout.
func PingDB(parent context.Context, db *bun.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return db.PingContext(ctx)
}
