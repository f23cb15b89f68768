package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	paris := &Coordinate{Lat: "48.8566", Lon: "2.3522"}
	london := &Coordinate{Lat: "51.5074", Lon: "-0.1278"}

	km, ok := Distance(paris, london)
	assert.True(t, ok)
	assert.InDelta(t, 343.5, km, 2)

	km, ok = Distance(paris, paris)
	assert.True(t, ok)
	assert.InDelta(t, 0, km, 1e-9)
}

func TestDistanceMissingOrInvalid(t *testing.T) {
	paris := &Coordinate{Lat: "48.8566", Lon: "2.3522"}

	_, ok := Distance(nil, paris)
	assert.False(t, ok)
	_, ok = Distance(paris, nil)
	assert.False(t, ok)
	_, ok = Distance(paris, &Coordinate{Lat: "north", Lon: "2"})
	assert.False(t, ok)
	_, ok = Distance(paris, &Coordinate{Lat: "95", Lon: "2"})
	assert.False(t, ok)
}
