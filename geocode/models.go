package geocode

// Coordinate is a geocoding match. Latitude and longitude stay string-encoded as the
// API returns them. A nil *Coordinate means no usable result.
type Coordinate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name,omitempty"`
}

// nominatimPlace is one element of the Nominatim search response.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
