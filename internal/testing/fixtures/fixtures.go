package fixtures

import (
	"time"

	"github.com/dnbonthebike/ridemap/internal/model"
)

// EventOption mutates an event fixture.
type EventOption func(*model.Event)

// Event builds an approved event with sensible defaults. Options override
// individual fields.
func Event(id int64, opts ...EventOption) model.Event {
	e := model.Event{
		ID:           id,
		Title:        "Neon Night Ride",
		Organizer:    "DNB Crew Berlin",
		LocationName: "Berlin",
		Country:      StrPtr("Germany"),
		Latitude:     52.52,
		Longitude:    13.405,
		EventDate:    time.Date(2099, 6, 1, 18, 0, 0, 0, time.UTC),
		Status:       model.StatusApproved,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithTitle sets the event title.
func WithTitle(title string) EventOption {
	return func(e *model.Event) { e.Title = title }
}

// WithOrganizer sets the organizer display name.
func WithOrganizer(name string) EventOption {
	return func(e *model.Event) { e.Organizer = name }
}

// WithCountry sets the event country.
func WithCountry(country string) EventOption {
	return func(e *model.Event) { e.Country = StrPtr(country) }
}

// WithOrganizerID links the event to an organizer record.
func WithOrganizerID(id int64) EventOption {
	return func(e *model.Event) { e.OrganizerID = I64Ptr(id) }
}

// WithNoCountry clears the event country.
func WithNoCountry() EventOption {
	return func(e *model.Event) { e.Country = nil }
}

// WithCoords sets the event coordinates.
func WithCoords(lat, lng float64) EventOption {
	return func(e *model.Event) {
		e.Latitude = lat
		e.Longitude = lng
	}
}

// WithDate sets the event date.
func WithDate(d time.Time) EventOption {
	return func(e *model.Event) { e.EventDate = d }
}

// WithStatus sets the moderation status.
func WithStatus(s model.EventStatus) EventOption {
	return func(e *model.Event) { e.Status = s }
}

// WithVideoURL sets the video URL.
func WithVideoURL(url string) EventOption {
	return func(e *model.Event) { e.VideoURL = StrPtr(url) }
}

// WithDescription sets the description.
func WithDescription(desc string) EventOption {
	return func(e *model.Event) { e.Description = StrPtr(desc) }
}

// Suggestion builds a pending video suggestion referencing eventID.
func Suggestion(id, eventID int64, videoURL string) model.VideoSuggestion {
	return model.VideoSuggestion{
		ID:        id,
		EventID:   eventID,
		VideoURL:  videoURL,
		Status:    model.StatusPending,
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

// Organizer builds an organizer fixture.
func Organizer(id int64, name string) model.Organizer {
	return model.Organizer{
		ID:        id,
		Name:      name,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// F64Ptr returns a pointer to f.
func F64Ptr(f float64) *float64 { return &f }

// I64Ptr returns a pointer to i.
func I64Ptr(i int64) *int64 { return &i }
