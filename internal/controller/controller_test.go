package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dnbonthebike/ridemap/internal/geo"
	"github.com/dnbonthebike/ridemap/internal/geoloc"
	"github.com/dnbonthebike/ridemap/internal/mapview"
	"github.com/dnbonthebike/ridemap/internal/model"
	"github.com/dnbonthebike/ridemap/internal/testing/fixtures"
)

var refNow = time.Date(2050, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	events []model.Event
	err    error
	calls  int
}

func (s *fakeSource) Events(context.Context) ([]model.Event, error) {
	s.calls++
	return s.events, s.err
}

// recordingEngine is the minimal mapview.Engine for observing renders.
type recordingEngine struct {
	renders     [][]mapview.Feature
	selected    map[int64]bool
	flights     int
	userMarkers []geo.LngLat
}

func (e *recordingEngine) SetData(features []mapview.Feature) {
	e.renders = append(e.renders, features)
}

func (e *recordingEngine) SetFeatureSelected(id int64, selected bool) {
	if e.selected == nil {
		e.selected = map[int64]bool{}
	}
	e.selected[id] = selected
}

func (e *recordingEngine) FlyTo(geo.LngLat, float64)  { e.flights++ }
func (e *recordingEngine) EaseTo(geo.LngLat, float64) {}

func (e *recordingEngine) ClusterExpansionZoom(int64) (float64, error) { return 10, nil }
func (e *recordingEngine) FitBounds(geo.Bounds, float64)               {}

func (e *recordingEngine) SetUserMarker(at geo.LngLat) {
	e.userMarkers = append(e.userMarkers, at)
}

func sourceEvents() []model.Event {
	return []model.Event{
		fixtures.Event(1,
			fixtures.WithCountry("Germany"),
			fixtures.WithDate(refNow.Add(48*time.Hour)),
			fixtures.WithCoords(52.52, 13.405)),
		fixtures.Event(2,
			fixtures.WithCountry("France"),
			fixtures.WithDate(refNow.Add(24*time.Hour)),
			fixtures.WithCoords(48.8, 2.3)),
		fixtures.Event(3,
			fixtures.WithCountry("Germany"),
			fixtures.WithDate(refNow.Add(-24*time.Hour)),
			fixtures.WithCoords(51.5, -0.1)),
	}
}

func newController(t *testing.T, engine *recordingEngine, locator geoloc.Provider) *Controller {
	t.Helper()
	c := New(Config{
		Source:  &fakeSource{events: sourceEvents()},
		Adapter: mapview.NewAdapter(engine, mapview.DefaultConfig()),
		Locator: locator,
		Clock:   func() time.Time { return refNow },
	})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoad_DefaultFilterShowsUpcoming(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)

	events := c.Events()
	if len(events) != 2 {
		t.Fatalf("derived events = %d, want 2 upcoming", len(events))
	}
	// Soonest first.
	if events[0].ID != 2 || events[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", events[0].ID, events[1].ID)
	}
	if len(engine.renders) != 1 {
		t.Errorf("renders = %d, want 1", len(engine.renders))
	}
}

func TestLoad_SourceError(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: errors.New("backend down")}
	c := New(Config{Source: src, Clock: func() time.Time { return refNow }})

	if err := c.Load(context.Background()); err == nil {
		t.Error("Load() error = nil, want non-nil")
	}
}

func TestFiltersRerender(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)

	c.SetCountry("Germany")
	events := c.Events()
	if len(events) != 1 || events[0].ID != 1 {
		t.Fatalf("Germany upcoming = %v, want event 1 only", ids(events))
	}

	c.SetTimeFilter(model.TimeAll)
	if got := ids(c.Events()); len(got) != 2 {
		t.Errorf("Germany all = %v, want 2 events", got)
	}

	c.ResetFilters()
	f := c.Filters()
	if f.Country != "" || f.Time != model.TimeUpcoming {
		t.Errorf("filters after reset = %+v, want defaults", f)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)

	c.Select(2)
	e, ok := c.SelectedEvent()
	if !ok || e.ID != 2 {
		t.Fatalf("SelectedEvent() = %v, %v; want event 2", e.ID, ok)
	}
	if !engine.selected[2] {
		t.Error("marker 2 not highlighted")
	}
	if engine.flights != 1 {
		t.Errorf("flights = %d, want 1", engine.flights)
	}

	c.ClearSelection()
	if _, ok := c.SelectedEvent(); ok {
		t.Error("selection not cleared")
	}
	if engine.selected[2] {
		t.Error("marker 2 still highlighted after clear")
	}
}

func TestSelectionDanglesAcrossFilterChange(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)

	c.Select(2) // France
	c.SetCountry("Germany")

	if _, ok := c.SelectedEvent(); ok {
		t.Fatal("filtered-out selection should report nothing selected")
	}

	// Undoing the filter restores the selection.
	c.SetCountry("")
	e, ok := c.SelectedEvent()
	if !ok || e.ID != 2 {
		t.Errorf("SelectedEvent() after undo = %v, %v; want event 2", e.ID, ok)
	}
}

func TestMarkerDrivenSelection(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)
	adapter := c.adapter

	adapter.MarkerClicked(1)

	e, ok := c.SelectedEvent()
	if !ok || e.ID != 1 {
		t.Fatalf("SelectedEvent() = %v, %v; want event 1", e.ID, ok)
	}
	// One flight from the click; the follow-up render must not add another.
	if engine.flights != 1 {
		t.Errorf("flights = %d, want 1", engine.flights)
	}
}

func TestNearMeToggle(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	berlin := geo.Point{Lat: 52.52, Lng: 13.405}
	c := newController(t, engine, geoloc.Fixed{Point: berlin})

	if err := c.NearMe(context.Background()); err != nil {
		t.Fatalf("NearMe() error = %v", err)
	}
	f := c.Filters()
	if !f.SortByDistance || f.UserLocation == nil {
		t.Fatalf("filters after near-me = %+v, want distance sort with location", f)
	}
	events := c.Events()
	if events[0].ID != 1 {
		t.Errorf("nearest first = %d, want event 1 (Berlin)", events[0].ID)
	}
	if events[0].Distance == nil {
		t.Error("distance annotation missing")
	}
	if len(engine.userMarkers) == 0 {
		t.Error("user marker not placed")
	}

	// Second invocation toggles the sort off but keeps the location.
	if err := c.NearMe(context.Background()); err != nil {
		t.Fatalf("NearMe() toggle-off error = %v", err)
	}
	f = c.Filters()
	if f.SortByDistance {
		t.Error("distance sort still on")
	}
	if f.UserLocation == nil {
		t.Error("location dropped on toggle-off")
	}
	if c.Events()[0].Distance == nil {
		t.Error("distance annotation dropped on toggle-off")
	}
}

func TestNearMeUnavailable(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, geoloc.Unavailable{})

	err := c.NearMe(context.Background())
	if !errors.Is(err, geoloc.ErrUnavailable) {
		t.Fatalf("NearMe() error = %v, want ErrUnavailable", err)
	}
	if c.Filters().SortByDistance {
		t.Error("distance sort enabled despite failure")
	}
}

func TestOptionsAndCounts(t *testing.T) {
	t.Parallel()

	engine := &recordingEngine{}
	c := newController(t, engine, nil)

	countries, organizers := c.Options()
	if len(countries) != 2 || countries[0] != "France" || countries[1] != "Germany" {
		t.Errorf("countries = %v, want [France Germany]", countries)
	}
	if len(organizers) != 1 {
		t.Errorf("organizers = %v, want one entry", organizers)
	}

	upcoming, past := c.Counts()
	if upcoming != 2 || past != 1 {
		t.Errorf("counts = %d/%d, want 2 upcoming, 1 past", upcoming, past)
	}
}

func ids(events []model.Event) []int64 {
	out := make([]int64, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
