// Package geoloc abstracts the source of the user's current position for the
// near-me flow.
package geoloc

import (
	"context"
	"errors"
	"time"

	"github.com/dnbonthebike/ridemap/internal/geo"
)

// ErrUnavailable signals that no position source is present or the user
// denied access to it.
var ErrUnavailable = errors.New("geolocation unavailable")

// Options bound a single position request.
type Options struct {
	// Timeout caps how long a fix may take.
	Timeout time.Duration
	// MaximumAge is the oldest acceptable cached fix.
	MaximumAge time.Duration
	// HighAccuracy requests a precise fix at the cost of latency.
	HighAccuracy bool
}

// Provider produces a single position fix.
type Provider interface {
	CurrentPosition(ctx context.Context, opts Options) (geo.Point, error)
}

// Fixed always reports the same position. It backs the CLI's --near flag and
// tests.
type Fixed struct {
	Point geo.Point
}

func (f Fixed) CurrentPosition(ctx context.Context, _ Options) (geo.Point, error) {
	if err := ctx.Err(); err != nil {
		return geo.Point{}, err
	}
	return f.Point, nil
}

// Unavailable is a Provider with no position source.
type Unavailable struct{}

func (Unavailable) CurrentPosition(context.Context, Options) (geo.Point, error) {
	return geo.Point{}, ErrUnavailable
}
