package dto

type ParseRequest struct {
	View string `json:"view"`
	Text string `json:"text"`
}

type MatchResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Format    string  `json:"format"`
	Original  string  `json:"original"`
}

// Conversion is filled only when exactly one coordinate was found.
// Map and Links follow the first match whenever there is one.
type ParseResponse struct {
	Matches    []MatchResponse   `json:"matches"`
	Conversion *ConvertResponse  `json:"conversion,omitempty"`
	Links      *LinksResponse    `json:"links,omitempty"`
	Map        *MapStateResponse `json:"map,omitempty"`
}
