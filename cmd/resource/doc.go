// Package resource implements the fastusers domain model and persistence layer.
//
// It defines the three managed resources (users, addresses and the singleton
// service configuration), their shared audit columns, and a Store boundary
// backed by the bun ORM (PostgreSQL in production, in-memory SQLite for
// development and tests).
//
// All deletes are soft deletes: rows are flagged and stamped, never removed.
package resource
