package domain

import "fmt"

// Immutable geographic point in decimal degrees (latitude, longitude).
// A valid Coordinate satisfies -90 <= Lat <= 90 and -180 <= Lon <= 180.
type Coordinate struct {
	Lat float64
	Lon float64
}

// IsValidCoordinate reports whether lat and lon are inside the geographic range.
func IsValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (c Coordinate) Valid() bool { return IsValidCoordinate(c.Lat, c.Lon) }

// Return the "lat,lon" form accepted by most map services.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
