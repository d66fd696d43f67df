// Package controller coordinates the event list, filters, selection state,
// and the map adapter. It is the single owner of the selected event id.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dnbonthebike/ridemap/internal/geoloc"
	"github.com/dnbonthebike/ridemap/internal/mapview"
	"github.com/dnbonthebike/ridemap/internal/model"
	"github.com/dnbonthebike/ridemap/internal/view"
)

// EventSource provides the raw event set. *client.Client satisfies it.
type EventSource interface {
	Events(ctx context.Context) ([]model.Event, error)
}

// Config wires a Controller.
type Config struct {
	Source  EventSource
	Adapter *mapview.Adapter
	// Locator backs the near-me flow. Optional; near-me fails with
	// geoloc.ErrUnavailable when nil.
	Locator geoloc.Provider
	// GeolocOptions bound each position request.
	GeolocOptions geoloc.Options
	// Clock defaults to time.Now. Derivation uses it as the reference
	// instant for the upcoming/past split.
	Clock func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Controller drives one map page. It is not safe for concurrent use: like
// the page it models, all calls are expected from a single goroutine.
type Controller struct {
	source  EventSource
	adapter *mapview.Adapter
	locator geoloc.Provider
	geoOpts geoloc.Options
	clock   func() time.Time
	logger  *slog.Logger

	events     []model.Event
	filters    model.Filters
	selectedID *int64
	derived    []model.Event
}

// New creates a controller and registers it as the adapter's select handler.
func New(cfg Config) *Controller {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		source:  cfg.Source,
		adapter: cfg.Adapter,
		locator: cfg.Locator,
		geoOpts: cfg.GeolocOptions,
		clock:   clock,
		logger:  logger,
		filters: model.DefaultFilters(),
	}
	if c.adapter != nil {
		c.adapter.SetSelectHandler(c.Select)
	}
	return c
}

// Load fetches the event set and re-renders. Filters and selection survive a
// reload.
func (c *Controller) Load(ctx context.Context) error {
	events, err := c.source.Events(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	c.events = events
	c.logger.Info("events loaded", "count", len(events))
	c.sync()
	return nil
}

// Events returns the current derived (filtered, sorted, annotated) list.
func (c *Controller) Events() []model.Event {
	return c.derived
}

// Filters returns the active filters.
func (c *Controller) Filters() model.Filters {
	return c.filters
}

// SetCountry filters by exact country name. Empty matches all.
func (c *Controller) SetCountry(country string) {
	c.filters.Country = country
	c.sync()
}

// SetOrganizer filters by exact organizer display name. Empty matches all.
func (c *Controller) SetOrganizer(organizer string) {
	c.filters.Organizer = organizer
	c.sync()
}

// SetTimeFilter switches the upcoming/past/all partition.
func (c *Controller) SetTimeFilter(tf model.TimeFilter) {
	c.filters.Time = tf
	c.sync()
}

// ResetFilters restores the defaults. The user location and the selection
// are kept.
func (c *Controller) ResetFilters() {
	loc := c.filters.UserLocation
	c.filters = model.DefaultFilters()
	c.filters.UserLocation = loc
	c.sync()
}

// Select marks an event as selected. The map adapter picks the change up on
// the next render; list- and marker-driven selection both land here.
func (c *Controller) Select(id int64) {
	c.selectedID = &id
	c.sync()
}

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() {
	c.selectedID = nil
	c.sync()
}

// SelectedEvent returns the selected event if it is present in the derived
// list. A selection dangling after a filter change reports no selection; the
// id itself is kept, so undoing the filter restores it.
func (c *Controller) SelectedEvent() (model.Event, bool) {
	if c.selectedID == nil {
		return model.Event{}, false
	}
	for _, e := range c.derived {
		if e.ID == *c.selectedID {
			return e, true
		}
	}
	return model.Event{}, false
}

// NearMe toggles distance sorting. When it is off, a single position fix is
// requested and distance sort is enabled; when already on, it is switched
// off and the stored location is kept so distances stay annotated.
func (c *Controller) NearMe(ctx context.Context) error {
	if c.filters.SortByDistance {
		c.filters.SortByDistance = false
		c.sync()
		return nil
	}
	if c.locator == nil {
		return geoloc.ErrUnavailable
	}
	p, err := c.locator.CurrentPosition(ctx, c.geoOpts)
	if err != nil {
		return fmt.Errorf("locate user: %w", err)
	}
	c.filters.UserLocation = &p
	c.filters.SortByDistance = true
	c.logger.Info("user located", "lat", p.Lat, "lng", p.Lng)
	c.sync()
	return nil
}

// Options lists the distinct filterable countries and organizers in the full
// (unfiltered) event set.
func (c *Controller) Options() (countries, organizers []string) {
	return view.Options(c.events)
}

// Counts tallies upcoming and past events in the full event set.
func (c *Controller) Counts() (upcoming, past int) {
	return view.Counts(c.events, c.clock())
}

func (c *Controller) sync() {
	c.derived = view.Derive(c.events, c.filters, c.clock())
	if c.adapter != nil {
		c.adapter.Render(c.derived, c.selectedID)
		c.adapter.SetUserLocation(c.filters.UserLocation)
	}
}
