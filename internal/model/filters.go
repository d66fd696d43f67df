package model

import "github.com/dnbonthebike/ridemap/internal/geo"

// TimeFilter partitions events by comparing the event date to a reference
// instant sampled once per derivation pass.
type TimeFilter string

const (
	TimeAll      TimeFilter = "all"
	TimeUpcoming TimeFilter = "upcoming"
	TimePast     TimeFilter = "past"
)

// IsValid reports whether f is a known time filter.
func (f TimeFilter) IsValid() bool {
	switch f {
	case TimeAll, TimeUpcoming, TimePast:
		return true
	}
	return false
}

// Filters is the session-scoped filter configuration for the event view.
// It is never persisted.
type Filters struct {
	// Country filters by exact match; empty means any.
	Country string
	// Organizer filters by organizer display name; empty means any.
	Organizer string
	// Time selects all, upcoming, or past events.
	Time TimeFilter
	// SortByDistance orders by distance from UserLocation when both are set.
	SortByDistance bool
	// UserLocation is the reference point for distance annotation; nil when
	// no location filter is active.
	UserLocation *geo.Point
}

// DefaultFilters returns the initial filter state: upcoming events, no
// country/organizer restriction, no location.
func DefaultFilters() Filters {
	return Filters{Time: TimeUpcoming}
}
