// Package database provides connection management for MySQL, PostgreSQL and
// SQLite, schema migrations with foreign keys, SQL error classification,
// health checks and query logging, all built on top of Bun.
package database
