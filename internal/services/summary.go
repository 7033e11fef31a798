package services

import (
	"coordinate-converter-service/internal/domain"
	"fmt"
	"math"
	"strconv"
)

// Third-party map URLs for a single point.
type Links struct {
	GoogleEarth   string
	GoogleMaps    string
	OpenStreetMap string
}

// FormatSummary renders the multi-line conversion result shown to the user:
// decimal form, the "lat, lon" form for map services, and the DMS fields as entered.
func FormatSummary(in DMSInput, c domain.Coordinate) string {
	return fmt.Sprintf(`Latitude: %.6f°
Longitude: %.6f°

Coordinates: %.6f, %.6f

Google Maps format: %.6f, %.6f

Original DMS:
Latitude: %s° %s' %s" %s
Longitude: %s° %s' %s" %s`,
		c.Lat, c.Lon,
		c.Lat, c.Lon,
		c.Lat, c.Lon,
		num(in.LatDeg), num(in.LatMin), num(in.LatSec), in.LatDir,
		num(in.LonDeg), num(in.LonMin), num(in.LonSec), in.LonDir,
	)
}

// FormatDMS renders one axis as 40° 26' 46.000" N.
func FormatDMS(d domain.DMS) string {
	return fmt.Sprintf(`%d° %d' %.3f" %s`, d.Degrees, d.Minutes, d.Seconds, d.Hemisphere)
}

// FieldsFromCoordinate fills the DMS form fields from a decimal point, as done for
// map clicks and single parse results. Seconds are rounded to 3 fraction digits;
// a rounding that reaches 60 carries into minutes and degrees so the fields stay valid.
func FieldsFromCoordinate(c domain.Coordinate) DMSInput {
	lat := roundedDMS(c.Lat, true)
	lon := roundedDMS(c.Lon, false)

	return DMSInput{
		LatDeg: float64(lat.Degrees),
		LatMin: float64(lat.Minutes),
		LatSec: lat.Seconds,
		LatDir: lat.Hemisphere,
		LonDeg: float64(lon.Degrees),
		LonMin: float64(lon.Minutes),
		LonSec: lon.Seconds,
		LonDir: lon.Hemisphere,
	}
}

func roundedDMS(decimal float64, isLat bool) domain.DMS {
	d := ToDMS(decimal)
	d.Hemisphere = domain.HemisphereFor(decimal, isLat)

	d.Seconds = math.Round(d.Seconds*1000) / 1000
	if d.Seconds >= 60 {
		d.Seconds = 0
		d.Minutes++
	}
	if d.Minutes >= 60 {
		d.Minutes = 0
		d.Degrees++
	}
	return d
}

// MapLinks builds the external map service URLs for c.
func MapLinks(c domain.Coordinate) Links {
	lat, lon := num(c.Lat), num(c.Lon)
	return Links{
		GoogleEarth:   fmt.Sprintf("https://earth.google.com/web/search/%s,%s/@%s,%s,1000a,35y,0h,0t,0r", lat, lon, lat, lon),
		GoogleMaps:    fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s", lat, lon),
		OpenStreetMap: fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s&zoom=15", lat, lon),
	}
}

// num prints the shortest representation, so 46 stays "46" and 30.5 stays "30.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
