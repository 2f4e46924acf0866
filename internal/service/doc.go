// Package service implements business logic for saved networks.
//
// NetworkService is the single owner of the in-memory registry. The registry
// has no locking of its own, so every call into it happens under the
// service's mutex: writes (save, remove, user switch, reload) take the write
// lock and lookups take the read lock.
//
// # Persistence
//
// Every change is written to the repository before the registry is updated,
// so a restart followed by Load reproduces the same registry contents.
//
// # User Switching
//
// In lazy mode a user switch only records the new foreground user; entries
// evaluated for the previous user stay visible until the next reload. In
// eager mode the current-user views are rebuilt immediately.
//
// # Event System
//
// Changes are published on an EventBus and streamed to clients via
// Server-Sent Events.
package service
