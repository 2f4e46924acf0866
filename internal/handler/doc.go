// Package handler implements the HTTP API for saved networks.
//
// NetworkHandler exposes the network service: listing and fetching networks
// for all users or the current user, saving and removing networks, matching
// scan results, switching the foreground user, import/export and a plain
// text registry dump.
//
// # Response Format
//
// Success responses return JSON with 200, 201 or 204. Error responses return
// JSON with an {error, details} body; unknown or invisible networks map to 404.
//
// # Middleware
//
// Chain composes Recover, CORS and Logger around the mux.
package handler
