package geocode

import (
	"strconv"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

// LatLng parses the coordinate into an s2.LatLng.
func (c *Coordinate) LatLng() (s2.LatLng, bool) {
	if c == nil {
		return s2.LatLng{}, false
	}
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return s2.LatLng{}, false
	}
	lon, err := strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return s2.LatLng{}, false
	}
	ll := s2.LatLngFromDegrees(lat, lon)
	if !ll.IsValid() {
		return s2.LatLng{}, false
	}
	return ll, true
}

// Distance returns the great-circle distance between a and b in kilometres.
// ok is false when either side is missing or not a valid coordinate.
func Distance(a, b *Coordinate) (km float64, ok bool) {
	p1, ok := a.LatLng()
	if !ok {
		return 0, false
	}
	p2, ok := b.LatLng()
	if !ok {
		return 0, false
	}
	return p1.Distance(p2).Radians() * EarthRadiusKm, true
}
