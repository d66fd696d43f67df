// Package client implements the typed HTTP client for the events backend.
//
// Client covers the public read/write surface; Admin wraps the moderation
// endpoints, which require the shared-secret X-Admin-Key header. An
// authentication failure on an admin call is surfaced as ErrInvalidAdminKey
// so callers can fall back to an unauthenticated state; every other failure
// is an *APIError.
//
// All calls take a context.Context and carry a generated X-Request-ID header.
// The client performs no retries; recovery is a manual repeat of the action.
package client
