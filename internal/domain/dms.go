package domain

import (
	"fmt"
	"strings"
)

// Hemisphere carries the sign of a coordinate axis separately from its magnitude.
type Hemisphere string

const (
	North Hemisphere = "N"
	South Hemisphere = "S"
	East  Hemisphere = "E"
	West  Hemisphere = "W"
)

// ParseHemisphere accepts a single hemisphere letter in either case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch h := Hemisphere(strings.ToUpper(strings.TrimSpace(s))); h {
	case North, South, East, West:
		return h, nil
	default:
		return "", fmt.Errorf("parse hemisphere: unknown direction %q", s)
	}
}

// IsLatitude reports whether h selects a latitude (N/S) rather than a longitude.
func (h Hemisphere) IsLatitude() bool { return h == North || h == South }

// Sign is -1 for the southern and western hemispheres, 1 otherwise.
func (h Hemisphere) Sign() float64 {
	if h == South || h == West {
		return -1
	}
	return 1
}

// HemisphereFor picks the hemisphere of a signed decimal value. Zero maps to N or E.
func HemisphereFor(decimal float64, isLat bool) Hemisphere {
	switch {
	case isLat && decimal < 0:
		return South
	case isLat:
		return North
	case decimal < 0:
		return West
	default:
		return East
	}
}

// Sign-free degrees/minutes/seconds decomposition of one coordinate axis.
// Minutes and Seconds are kept in [0, 60).
type DMS struct {
	Degrees    int
	Minutes    int
	Seconds    float64
	Hemisphere Hemisphere
}
