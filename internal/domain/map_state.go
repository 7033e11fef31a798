package domain

const (
	DefaultZoom = 2
	MaxZoom     = 19
)

// Snapshot of the presentation layer's map handle.
// Marker is nil until a point has been selected.
type MapState struct {
	Center Coordinate
	Zoom   int
	Marker *Coordinate
}

// DefaultMapState is the world overview shown before any point is selected.
func DefaultMapState() MapState {
	return MapState{
		Center: Coordinate{Lat: 20, Lon: 0},
		Zoom:   DefaultZoom,
	}
}

// FlyTo returns the state after selecting c: a single marker at c, centered on it,
// zoomed in to at least minZoom but never zoomed out.
func (s MapState) FlyTo(c Coordinate, minZoom int) MapState {
	zoom := max(s.Zoom, minZoom)
	if zoom > MaxZoom {
		zoom = MaxZoom
	}

	marker := c
	return MapState{
		Center: c,
		Zoom:   zoom,
		Marker: &marker,
	}
}
