package model

import "time"

// Organizer is the named host of one or more events. The main discovery flow
// derives its organizer filter options from the distinct organizer names on
// the event set; this entity is fetched only where the backend exposes it.
type Organizer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
}
