package dto

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type MapStateResponse struct {
	Center PointResponse  `json:"center"`
	Zoom   int            `json:"zoom"`
	Marker *PointResponse `json:"marker"`
}

// A click on the map widget.
type MapClickRequest struct {
	View string  `json:"view"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
