package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dnbonthebike/ridemap/internal/model"
)

// Admin calls the moderation surface of the backend. Every request carries
// the shared-secret X-Admin-Key header; a 401 surfaces as ErrInvalidAdminKey.
type Admin struct {
	c   *Client
	key string
}

type suggestionsEnvelope struct {
	Suggestions []model.VideoSuggestion `json:"suggestions"`
}

// AllEvents fetches every event regardless of moderation status.
func (a *Admin) AllEvents(ctx context.Context) ([]model.Event, error) {
	var out eventsEnvelope
	if err := a.c.do(ctx, http.MethodGet, "/admin/events", a.key, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch all events: %w", err)
	}
	return out.Events, nil
}

// PendingEvents fetches events awaiting moderation.
func (a *Admin) PendingEvents(ctx context.Context) ([]model.Event, error) {
	var out eventsEnvelope
	if err := a.c.do(ctx, http.MethodGet, "/admin/events/pending", a.key, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch pending events: %w", err)
	}
	return out.Events, nil
}

// UpdateEvent applies a partial update to an event and returns the result.
func (a *Admin) UpdateEvent(ctx context.Context, eventID int64, req *model.UpdateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var updated model.Event
	path := fmt.Sprintf("/admin/events/%d", eventID)
	if err := a.c.do(ctx, http.MethodPut, path, a.key, req, &updated); err != nil {
		return nil, fmt.Errorf("update event %d: %w", eventID, err)
	}
	return &updated, nil
}

// ApproveEvent marks an event approved.
func (a *Admin) ApproveEvent(ctx context.Context, eventID int64) error {
	path := fmt.Sprintf("/admin/events/%d/approve", eventID)
	if err := a.c.do(ctx, http.MethodPatch, path, a.key, nil, nil); err != nil {
		return fmt.Errorf("approve event %d: %w", eventID, err)
	}
	return nil
}

// RejectEvent marks an event rejected.
func (a *Admin) RejectEvent(ctx context.Context, eventID int64) error {
	path := fmt.Sprintf("/admin/events/%d/reject", eventID)
	if err := a.c.do(ctx, http.MethodPatch, path, a.key, nil, nil); err != nil {
		return fmt.Errorf("reject event %d: %w", eventID, err)
	}
	return nil
}

// DeleteEvent removes an event.
func (a *Admin) DeleteEvent(ctx context.Context, eventID int64) error {
	path := fmt.Sprintf("/admin/events/%d", eventID)
	if err := a.c.do(ctx, http.MethodDelete, path, a.key, nil, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", eventID, err)
	}
	return nil
}

// Suggestions fetches pending video suggestions.
func (a *Admin) Suggestions(ctx context.Context) ([]model.VideoSuggestion, error) {
	var out suggestionsEnvelope
	if err := a.c.do(ctx, http.MethodGet, "/admin/suggestions", a.key, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	return out.Suggestions, nil
}

// ApproveSuggestion accepts a suggestion. The backend copies the suggested
// URL onto the referenced event as part of the same operation.
func (a *Admin) ApproveSuggestion(ctx context.Context, suggestionID int64) error {
	path := fmt.Sprintf("/admin/suggestions/%d/approve", suggestionID)
	if err := a.c.do(ctx, http.MethodPatch, path, a.key, nil, nil); err != nil {
		return fmt.Errorf("approve suggestion %d: %w", suggestionID, err)
	}
	return nil
}

// RejectSuggestion declines a suggestion.
func (a *Admin) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	path := fmt.Sprintf("/admin/suggestions/%d/reject", suggestionID)
	if err := a.c.do(ctx, http.MethodPatch, path, a.key, nil, nil); err != nil {
		return fmt.Errorf("reject suggestion %d: %w", suggestionID, err)
	}
	return nil
}
