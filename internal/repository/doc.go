// Package repository defines the data access interface for saved networks.
//
// The registry is purely in-memory; this package is where configurations
// live between restarts. The service layer loads every stored network into
// the registry on startup and writes through on each change.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Repository on modernc.org/sqlite (pure Go,
// no cgo) with WAL mode. Tests use in-memory databases.
package repository
