package view

import (
	"sort"
	"strings"
	"time"

	"github.com/dnbonthebike/ridemap/internal/geo"
	"github.com/dnbonthebike/ridemap/internal/model"
)

// Derive applies the filter pipeline to events and returns the ordered view
// list. The pipeline runs in fixed order: time partition, country match,
// organizer match, distance annotation, ordering.
//
// now is the reference instant for the time partition; callers sample it once
// per derivation pass. The input slice is not mutated: results are copies,
// so the ephemeral distance annotation never leaks back into the source set.
func Derive(events []model.Event, f model.Filters, now time.Time) []model.Event {
	result := make([]model.Event, 0, len(events))

	for _, e := range events {
		switch f.Time {
		case model.TimeUpcoming:
			if e.EventDate.Before(now) {
				continue
			}
		case model.TimePast:
			if !e.EventDate.Before(now) {
				continue
			}
		}
		if f.Country != "" && (e.Country == nil || *e.Country != f.Country) {
			continue
		}
		if f.Organizer != "" && e.Organizer != f.Organizer {
			continue
		}

		if f.UserLocation != nil {
			d := geo.Distance(f.UserLocation.Lat, f.UserLocation.Lng, e.Latitude, e.Longitude)
			e.Distance = &d
		} else {
			e.Distance = nil
		}
		result = append(result, e)
	}

	switch {
	case f.SortByDistance && f.UserLocation != nil:
		sort.SliceStable(result, func(i, j int) bool {
			return distanceOf(&result[i]) < distanceOf(&result[j])
		})
	case f.Time == model.TimePast:
		// Past: most recent first
		sort.SliceStable(result, func(i, j int) bool {
			return result[j].EventDate.Before(result[i].EventDate)
		})
	default:
		// Upcoming and all: soonest first
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].EventDate.Before(result[j].EventDate)
		})
	}

	return result
}

func distanceOf(e *model.Event) float64 {
	if e.Distance == nil {
		return 0
	}
	return *e.Distance
}

// Options returns the distinct non-blank countries and organizer names
// present in the full event set, sorted, for populating filter dropdowns.
func Options(events []model.Event) (countries, organizers []string) {
	countrySet := make(map[string]struct{})
	organizerSet := make(map[string]struct{})

	for _, e := range events {
		if e.Country != nil && strings.TrimSpace(*e.Country) != "" {
			countrySet[*e.Country] = struct{}{}
		}
		if strings.TrimSpace(e.Organizer) != "" {
			organizerSet[e.Organizer] = struct{}{}
		}
	}

	countries = make([]string, 0, len(countrySet))
	for c := range countrySet {
		countries = append(countries, c)
	}
	organizers = make([]string, 0, len(organizerSet))
	for o := range organizerSet {
		organizers = append(organizers, o)
	}
	sort.Strings(countries)
	sort.Strings(organizers)
	return countries, organizers
}

// Counts tallies upcoming and past events in the full set against the given
// reference instant, for display on the time-filter controls.
func Counts(events []model.Event, now time.Time) (upcoming, past int) {
	for _, e := range events {
		if e.EventDate.Before(now) {
			past++
		} else {
			upcoming++
		}
	}
	return upcoming, past
}
