// Package mapview synchronizes event data and selection state with a
// clustering map engine.
//
// The Engine interface is the capability boundary: the adapter never assumes
// a concrete engine, it only pushes data, per-feature selected state, and
// camera moves through it. Cluster membership is entirely the engine's
// concern.
package mapview

import (
	"github.com/dnbonthebike/ridemap/internal/geo"
	"github.com/dnbonthebike/ridemap/internal/model"
)

// Engine is the minimal surface the adapter needs from a map engine.
type Engine interface {
	// SetData replaces the full feature set.
	SetData(features []Feature)
	// SetFeatureSelected toggles the highlight state of one marker.
	SetFeatureSelected(id int64, selected bool)
	// FlyTo animates the camera to center at the given zoom.
	FlyTo(center geo.LngLat, zoom float64)
	// EaseTo moves the camera with a short transition.
	EaseTo(center geo.LngLat, zoom float64)
	// ClusterExpansionZoom reports the zoom at which a cluster splits.
	ClusterExpansionZoom(clusterID int64) (float64, error)
	// FitBounds frames the given bounds with padding in pixels.
	FitBounds(b geo.Bounds, padding float64)
	// SetUserMarker places or moves the user position marker.
	SetUserMarker(at geo.LngLat)
}

// Feature is one event marker. ID doubles as the feature id used for
// selected-state updates.
type Feature struct {
	ID    int64
	At    geo.LngLat
	Event model.Event
}

// Config carries the map tuning knobs. ClusterMaxZoom and ClusterRadius are
// consumed by the engine at construction; the adapter uses the rest.
type Config struct {
	// ClusterMaxZoom is the zoom beyond which markers no longer cluster.
	ClusterMaxZoom float64
	// ClusterRadius is the cluster capture radius in pixels.
	ClusterRadius float64
	// SelectZoom is the camera zoom used when flying to a selection.
	SelectZoom float64
	// FitPadding is the pixel padding for the initial bounds fit.
	FitPadding float64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		ClusterMaxZoom: 14,
		ClusterRadius:  50,
		SelectZoom:     14,
		FitPadding:     50,
	}
}

// SelectHandler receives map-driven selection changes.
type SelectHandler func(id int64)

// Adapter keeps an Engine in sync with the current event set and selection.
type Adapter struct {
	engine   Engine
	cfg      Config
	onSelect SelectHandler

	events       map[int64]model.Event
	lastSelected *int64
	fitDone      bool
}

// NewAdapter wraps an engine.
func NewAdapter(engine Engine, cfg Config) *Adapter {
	return &Adapter{
		engine: engine,
		cfg:    cfg,
		events: make(map[int64]model.Event),
	}
}

// SetSelectHandler registers the callback for marker-driven selection.
func (a *Adapter) SetSelectHandler(fn SelectHandler) {
	a.onSelect = fn
}

// Render pushes the event set and reconciles highlight and camera state.
// The per-marker selected state is recomputed from scratch every pass, so a
// stale highlight can never survive a data refresh. The camera follows the
// selection only when the selected id actually changes.
func (a *Adapter) Render(events []model.Event, selectedID *int64) {
	features := make([]Feature, 0, len(events))
	a.events = make(map[int64]model.Event, len(events))
	for _, e := range events {
		a.events[e.ID] = e
		features = append(features, Feature{
			ID:    e.ID,
			At:    geo.LngLat{Lng: e.Longitude, Lat: e.Latitude},
			Event: e,
		})
	}
	a.engine.SetData(features)

	if !a.fitDone && len(features) > 0 {
		b := geo.NewBounds()
		for _, f := range features {
			b = b.Extend(f.At)
		}
		a.engine.FitBounds(b, a.cfg.FitPadding)
		a.fitDone = true
	}

	for _, f := range features {
		a.engine.SetFeatureSelected(f.ID, selectedID != nil && f.ID == *selectedID)
	}

	if selectionChanged(a.lastSelected, selectedID) {
		if selectedID != nil {
			if e, ok := a.events[*selectedID]; ok {
				a.engine.FlyTo(geo.LngLat{Lng: e.Longitude, Lat: e.Latitude}, a.cfg.SelectZoom)
			}
		}
		a.lastSelected = copyID(selectedID)
	}
}

// MarkerClicked handles a tap on an individual marker: the camera moves
// first, then the selection change is reported. The follow-up Render sees an
// unchanged id and leaves the camera alone.
func (a *Adapter) MarkerClicked(id int64) {
	e, ok := a.events[id]
	if !ok {
		return
	}
	a.engine.FlyTo(geo.LngLat{Lng: e.Longitude, Lat: e.Latitude}, a.cfg.SelectZoom)
	a.lastSelected = copyID(&id)
	if a.onSelect != nil {
		a.onSelect(id)
	}
}

// ClusterClicked expands a cluster by easing to its split zoom. Selection is
// untouched.
func (a *Adapter) ClusterClicked(clusterID int64, at geo.LngLat) {
	zoom, err := a.engine.ClusterExpansionZoom(clusterID)
	if err != nil {
		return
	}
	a.engine.EaseTo(at, zoom)
}

// SetUserLocation mirrors the active user location onto the map. A nil
// location is ignored.
func (a *Adapter) SetUserLocation(p *geo.Point) {
	if p == nil {
		return
	}
	a.engine.SetUserMarker(geo.LngLat{Lng: p.Lng, Lat: p.Lat})
}

func selectionChanged(prev, next *int64) bool {
	switch {
	case prev == nil && next == nil:
		return false
	case prev == nil || next == nil:
		return true
	default:
		return *prev != *next
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
