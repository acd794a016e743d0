package model

// NominatimPlace mirrors the fields of a Nominatim search result that are used.
// Coordinates arrive as decimal strings.
type NominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
