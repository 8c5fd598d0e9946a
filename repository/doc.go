// Package repository provides a generic repository abstraction built on Bun.
// A repository is bound to a bun.IDB, so the same code runs against the
// database handle or inside a caller-owned transaction.
package repository
