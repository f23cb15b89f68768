package handler

import (
	"html/template"

	"itinerary/geocode"
)

// Form field names.
const (
	fieldOrigin      = "origin"
	fieldDestination = "destination"
	fieldDays        = "days"
	fieldBudget      = "budget"
	fieldCuisine     = "cuisine_preference"
	fieldPeople      = "people_number"
	fieldInterests   = "interests"
)

// TripForm is a parsed form submission.
type TripForm struct {
	Origin            string  `validate:"required,max=200"`
	Destination       string  `validate:"required,max=200"`
	Days              int     `validate:"gt=0,lte=365"`
	Budget            float64 `validate:"gt=0"`
	CuisinePreference string  `validate:"max=200"`
	PeopleCount       int     `validate:"gt=0,lte=1000"`
	Interests         string  `validate:"required,max=1000"`
}

// formValues keeps the raw submitted strings so the form can be refilled.
type formValues struct {
	Origin            string
	Destination       string
	Days              string
	Budget            string
	CuisinePreference string
	PeopleCount       string
	Interests         string
}

// pageData is everything index.html renders.
type pageData struct {
	Form            formValues
	Errors          []string
	HasItinerary    bool
	Itinerary       template.HTML
	ItineraryFailed bool
	Origin          *geocode.Coordinate
	Destination     *geocode.Coordinate
	DistanceKm      float64
	HasDistance     bool
}
