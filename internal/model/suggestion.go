package model

import "time"

// VideoSuggestion is a public proposal to attach a video URL to an event,
// resolved exclusively by an admin action. Approval causes the backend to
// copy the suggested URL onto the referenced event.
type VideoSuggestion struct {
	ID        int64       `json:"id"`
	EventID   int64       `json:"event_id"`
	VideoURL  string      `json:"video_url"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	// EventTitle is denormalized for display; "Unknown Event" when the
	// referenced event no longer exists.
	EventTitle string `json:"event_title"`
}
