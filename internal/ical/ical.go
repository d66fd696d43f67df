// Package ical renders events as iCalendar documents for "add to calendar"
// export.
package ical

import (
	"regexp"
	"strings"
	"time"

	"github.com/dnbonthebike/ridemap/internal/model"
)

// SummaryPrefix brands exported calendar entries.
const SummaryPrefix = "DnB On The Bike - "

// timeLayout is the iCalendar basic UTC format.
const timeLayout = "20060102T150405Z"

// DefaultDuration is assumed for events, which carry no explicit end time.
const DefaultDuration = 2 * time.Hour

var whitespace = regexp.MustCompile(`\s+`)

// Encode renders a single-event VCALENDAR document. Lines are LF-joined.
func Encode(e model.Event) []byte {
	start := e.EventDate.UTC()
	end := start.Add(DefaultDuration)

	description := ""
	if e.Description != nil {
		description = *e.Description
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"DTSTART:" + start.Format(timeLayout),
		"DTEND:" + end.Format(timeLayout),
		"SUMMARY:" + SummaryPrefix + e.Title,
		"DESCRIPTION:" + description,
		"LOCATION:" + e.LocationName,
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return []byte(strings.Join(lines, "\n"))
}

// Filename derives a download filename from the event title: runs of
// whitespace collapse to underscores.
func Filename(title string) string {
	return whitespace.ReplaceAllString(title, "_") + ".ics"
}
