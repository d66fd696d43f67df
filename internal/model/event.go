package model

import (
	"regexp"
	"time"
)

// EventStatus is the moderation status gating public visibility of an event.
type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// IsValid reports whether s is one of the known moderation statuses.
func (s EventStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Event represents a scheduled ride with location, time, and moderation status.
//
// Identity is the backend-assigned integer id. Status is the single
// authoritative moderation field; there is no alternate representation.
type Event struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Organizer    string      `json:"organizer"`
	OrganizerID  *int64      `json:"organizer_id"`
	LocationName string      `json:"location_name"`
	Country      *string     `json:"country"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	EventDate    time.Time   `json:"event_date"`
	ImageURL     *string     `json:"image_url"`
	VideoURL     *string     `json:"video_url"`
	EventLink    *string     `json:"event_link"`
	Status       EventStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`

	// Distance in kilometers from the active user location. Ephemeral:
	// attached by the view derivation when a location filter is active,
	// never persisted or sent back to the backend.
	Distance *float64 `json:"distance,omitempty"`
}

// IsPast reports whether the event date is before the given reference instant.
func (e *Event) IsPast(now time.Time) bool {
	return e.EventDate.Before(now)
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// YouTubeEmbedURL extracts the video id from a YouTube watch/share URL and
// returns the privacy-enhanced embed URL for it. The second return value is
// false when the URL is not a recognizable YouTube link.
func YouTubeEmbedURL(raw string) (string, bool) {
	m := youtubeIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return "https://www.youtube-nocookie.com/embed/" + m[1], true
}
