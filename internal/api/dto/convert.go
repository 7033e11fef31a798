package dto

// DMS form fields. Missing numbers count as 0; missing directions default to N and E.
type ConvertRequest struct {
	View   string  `json:"view"`
	LatDeg float64 `json:"lat_deg"`
	LatMin float64 `json:"lat_min"`
	LatSec float64 `json:"lat_sec"`
	LatDir string  `json:"lat_dir"`
	LonDeg float64 `json:"lon_deg"`
	LonMin float64 `json:"lon_min"`
	LonSec float64 `json:"lon_sec"`
	LonDir string  `json:"lon_dir"`
}

type FieldsResponse struct {
	LatDeg float64 `json:"lat_deg"`
	LatMin float64 `json:"lat_min"`
	LatSec float64 `json:"lat_sec"`
	LatDir string  `json:"lat_dir"`
	LonDeg float64 `json:"lon_deg"`
	LonMin float64 `json:"lon_min"`
	LonSec float64 `json:"lon_sec"`
	LonDir string  `json:"lon_dir"`
}

type LinksResponse struct {
	GoogleEarth   string `json:"google_earth"`
	GoogleMaps    string `json:"google_maps"`
	OpenStreetMap string `json:"openstreetmap"`
}

type ConvertResponse struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	LatDMS    string            `json:"lat_dms"`
	LonDMS    string            `json:"lon_dms"`
	Summary   string            `json:"summary"`
	Fields    FieldsResponse    `json:"fields"`
	Links     LinksResponse     `json:"links"`
	Map       *MapStateResponse `json:"map,omitempty"`
}

type ValidationErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
