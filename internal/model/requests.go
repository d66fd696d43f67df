package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request payloads.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrLocationRequired is returned when a submission has no map pin.
var ErrLocationRequired = errors.New("select a location on the map")

// CreateEventRequest is the payload for a public event submission.
// Latitude/Longitude are pointers so an unset map pin is distinguishable
// from a pin at (0, 0); submissions without a pin are rejected client-side
// before any network call.
type CreateEventRequest struct {
	Title        string    `json:"title" validate:"required,min=3"`
	Description  *string   `json:"description"`
	Organizer    string    `json:"organizer" validate:"required"`
	LocationName string    `json:"location_name" validate:"required"`
	Country      *string   `json:"country"`
	Latitude     *float64  `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64  `json:"longitude" validate:"required,gte=-180,lte=180"`
	EventDate    time.Time `json:"event_date" validate:"required"`
	ImageURL     *string   `json:"image_url" validate:"omitempty,url"`
	VideoURL     *string   `json:"video_url" validate:"omitempty,url"`
	EventLink    *string   `json:"event_link" validate:"omitempty,url"`
}

// Validate checks the submission before it is sent to the backend.
func (r *CreateEventRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return ErrLocationRequired
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid event submission: %w", err)
	}
	return nil
}

// UpdateEventRequest is the partial-update payload for an admin event edit.
// Nil fields are left unchanged by the backend.
type UpdateEventRequest struct {
	Title        *string      `json:"title,omitempty" validate:"omitempty,min=3"`
	Description  *string      `json:"description,omitempty"`
	Organizer    *string      `json:"organizer,omitempty" validate:"omitempty,min=1"`
	LocationName *string      `json:"location_name,omitempty" validate:"omitempty,min=1"`
	Country      *string      `json:"country,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64     `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	EventDate    *time.Time   `json:"event_date,omitempty"`
	ImageURL     *string      `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL     *string      `json:"video_url,omitempty" validate:"omitempty,url"`
	EventLink    *string      `json:"event_link,omitempty" validate:"omitempty,url"`
	Status       *EventStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}

// Validate checks the edit payload before it is sent to the backend.
func (r *UpdateEventRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid event update: %w", err)
	}
	return nil
}

// SuggestVideoRequest is the payload for a public video suggestion.
type SuggestVideoRequest struct {
	EventID  int64  `json:"event_id" validate:"required"`
	VideoURL string `json:"video_url" validate:"required,url"`
}

// Validate checks the suggestion before it is sent to the backend.
func (r *SuggestVideoRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid video suggestion: %w", err)
	}
	return nil
}
