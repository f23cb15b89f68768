package itinerary

import "errors"

// ErrorPrefix starts the text of every failed generation.
const ErrorPrefix = "An error occurred during API call: "

// ErrInvalidTrip is returned when a trip has no days or no travelers.
var ErrInvalidTrip = errors.New("trip must have at least one day and one traveler")

// TripRequest holds the parameters of one itinerary request.
type TripRequest struct {
	Origin            string
	Destination       string
	Days              int
	Budget            float64
	CuisinePreference string
	PeopleCount       int
	Interests         string
}

// Itinerary is the outcome of a generation: either model text or the reason it failed.
type Itinerary struct {
	text string
	err  error
}

// Succeeded wraps generated text.
func Succeeded(text string) Itinerary {
	return Itinerary{text: text}
}

// FailedWith wraps the reason a generation failed.
func FailedWith(err error) Itinerary {
	return Itinerary{err: err}
}

// Failed reports whether the text API call failed.
func (it Itinerary) Failed() bool {
	return it.err != nil
}

// Err returns the failure reason, or nil.
func (it Itinerary) Err() error {
	return it.err
}

// Text returns the generated itinerary, or a readable error message in its place.
func (it Itinerary) Text() string {
	if it.err != nil {
		return ErrorPrefix + it.err.Error()
	}
	return it.text
}
