package ports

import (
	"context"
	"coordinate-converter-service/internal/domain"
)

// Port: the interactive map widget, as seen from the converter.
// Views are keyed by an opaque id so several clients can each keep their own map.
type MapView interface {
	// Place the single marker at c and center on it, zooming in to at least minZoom.
	FlyTo(ctx context.Context, view string, c domain.Coordinate, minZoom int) (domain.MapState, error)
	// Return the current state, or the default world view if nothing was selected yet.
	Current(ctx context.Context, view string) (domain.MapState, error)
	// Drop the marker and return to the default world view.
	Reset(ctx context.Context, view string) error
}
