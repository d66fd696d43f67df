// Package model defines the domain entities shared across the client.
//
// The model package contains the struct definitions for domain objects and
// request payloads, plus their client-side validation. Entities mirror the
// backend's JSON wire format.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Event: a scheduled ride with location, time, and moderation status
//   - Organizer: the named host of one or more events
//   - VideoSuggestion: a public proposal to attach a video URL to an event
//
// # Validation
//
// Request payloads carry go-playground/validator struct tags and expose a
// Validate method. Validation runs client-side before any network call;
// failures never reach the backend.
package model
