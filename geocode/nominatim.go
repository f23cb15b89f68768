package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"itinerary/backend"
	"itinerary/logging"
	"itinerary/metrics"

	"github.com/sirupsen/logrus"
)

// UpstreamNominatim labels Nominatim calls in metrics and the concurrency manager.
const UpstreamNominatim = "nominatim"

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// SlotAcquirer bounds concurrent calls to an upstream.
type SlotAcquirer interface {
	Acquire(ctx context.Context, upstream string) (func(), bool)
}

// Nominatim resolves place names through the OpenStreetMap Nominatim search API.
type Nominatim struct {
	baseURL   string
	userAgent string
	backend   *backend.Client
	slots     SlotAcquirer
}

// NewNominatim creates a geocoder. slots may be nil to disable the concurrency limit.
func NewNominatim(b *backend.Client, baseURL, userAgent string, slots SlotAcquirer) *Nominatim {
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		backend:   b,
		slots:     slots,
	}
}

// Geocode returns the first match for place, or nil when nothing usable came back.
// Failures are logged and reported as nil, the same as "not found".
func (n *Nominatim) Geocode(ctx context.Context, place string) *Coordinate {
	place = strings.TrimSpace(place)
	if place == "" {
		metrics.CountGeocode("not_found")
		return nil
	}

	if n.slots != nil {
		release, ok := n.slots.Acquire(ctx, UpstreamNominatim)
		if !ok {
			log.Warnf("Geocoding %q skipped: no upstream slot", place)
			metrics.CountGeocode("error")
			return nil
		}
		defer release()
	}

	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	endpoint := n.baseURL + "/search?" + params.Encode()

	headers := http.Header{}
	headers.Set("User-Agent", n.userAgent)

	var places []nominatimPlace
	if err := n.backend.JSON(ctx, UpstreamNominatim, http.MethodGet, endpoint, headers, nil, &places); err != nil {
		log.Warnf("Geocoding %q failed: %v", place, err)
		metrics.CountGeocode("error")
		return nil
	}

	if len(places) == 0 || places[0].Lat == "" || places[0].Lon == "" {
		log.Debugf("Geocoding %q: no match", place)
		metrics.CountGeocode("not_found")
		return nil
	}

	metrics.CountGeocode("found")
	return &Coordinate{
		Lat:         places[0].Lat,
		Lon:         places[0].Lon,
		DisplayName: places[0].DisplayName,
	}
}
