package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"itinerary/geocode"
	"itinerary/itinerary"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// ItineraryGenerator produces the itinerary text for a trip.
type ItineraryGenerator interface {
	Generate(ctx context.Context, trip itinerary.TripRequest) (itinerary.Itinerary, error)
}

// Geocoder resolves a place name, returning nil when it cannot.
type Geocoder interface {
	Geocode(ctx context.Context, place string) *geocode.Coordinate
}

// HTTPHandler serves the itinerary form and its results.
type HTTPHandler struct {
	Generator ItineraryGenerator
	Geocoder  Geocoder
}

// NewHTTPHandler creates a new instance of HTTPHandler
func NewHTTPHandler(g ItineraryGenerator, gc Geocoder) *HTTPHandler {
	return &HTTPHandler{
		Generator: g,
		Geocoder:  gc,
	}
}

// ServeHTTP implements the http.Handler interface for HTTPHandler
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, http.StatusOK, pageData{})
	case http.MethodPost:
		h.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		logAndReturnError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) submit(w http.ResponseWriter, r *http.Request) {
	form, raw, problems, err := parseTripForm(w, r)
	if err != nil {
		log.Warnf("Rejected submission from %s: %v", r.RemoteAddr, err)
		h.render(w, http.StatusBadRequest, pageData{Form: raw, Errors: problems})
		return
	}

	ctx := r.Context()
	it, err := h.Generator.Generate(ctx, form.Trip())
	if err != nil {
		if errors.Is(err, itinerary.ErrInvalidTrip) {
			log.Warnf("Rejected trip from %s: %v", r.RemoteAddr, err)
			h.render(w, http.StatusBadRequest, pageData{Form: raw, Errors: []string{"The trip needs at least one day and one traveler."}})
			return
		}
		logAndReturnError(w, "Internal Server Error", http.StatusInternalServerError, "Generating itinerary: "+err.Error())
		return
	}

	origin := h.Geocoder.Geocode(ctx, form.Origin)
	destination := h.Geocoder.Geocode(ctx, form.Destination)

	data := pageData{
		Form:            raw,
		HasItinerary:    true,
		Itinerary:       itineraryHTML(it.Text()),
		ItineraryFailed: it.Failed(),
		Origin:          origin,
		Destination:     destination,
	}
	data.DistanceKm, data.HasDistance = geocode.Distance(origin, destination)

	h.render(w, http.StatusOK, data)
}

func (h *HTTPHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		logAndReturnError(w, "Internal Server Error", http.StatusInternalServerError, "Rendering index.html: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// itineraryHTML escapes model output and turns its line breaks into <br>.
func itineraryHTML(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
