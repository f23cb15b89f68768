package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"itinerary/itinerary"

	"github.com/go-playground/validator/v10"
)

// maxFormSize limits the size of a form submission.
const maxFormSize = 64 << 10

// errInvalidForm wraps every form problem reported to the user.
var errInvalidForm = errors.New("invalid form")

// fieldLabels maps TripForm fields to what the user sees on the page.
var fieldLabels = map[string]string{
	"Origin":            "Origin",
	"Destination":       "Destination",
	"Days":              "Number of days",
	"Budget":            "Budget",
	"CuisinePreference": "Cuisine preference",
	"PeopleCount":       "Number of people",
	"Interests":         "Interests",
}

// parseTripForm reads and validates a submission. The returned problems are
// human-readable and safe to show; err is non-nil whenever problems is non-empty.
func parseTripForm(w http.ResponseWriter, r *http.Request) (TripForm, formValues, []string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		return TripForm{}, formValues{}, []string{"The form could not be read."}, fmt.Errorf("%w: %v", errInvalidForm, err)
	}

	raw := formValues{
		Origin:            strings.TrimSpace(r.PostForm.Get(fieldOrigin)),
		Destination:       strings.TrimSpace(r.PostForm.Get(fieldDestination)),
		Days:              strings.TrimSpace(r.PostForm.Get(fieldDays)),
		Budget:            strings.TrimSpace(r.PostForm.Get(fieldBudget)),
		CuisinePreference: strings.TrimSpace(r.PostForm.Get(fieldCuisine)),
		PeopleCount:       strings.TrimSpace(r.PostForm.Get(fieldPeople)),
		Interests:         strings.TrimSpace(r.PostForm.Get(fieldInterests)),
	}

	form := TripForm{
		Origin:            raw.Origin,
		Destination:       raw.Destination,
		CuisinePreference: raw.CuisinePreference,
		Interests:         raw.Interests,
	}

	var problems []string
	var err error
	// Fields that failed to parse are reported once, not again by the validator.
	unparsed := make(map[string]bool)
	if form.Days, err = strconv.Atoi(raw.Days); err != nil {
		unparsed["Days"] = true
		problems = append(problems, fieldLabels["Days"]+" must be a whole number.")
	}
	if form.PeopleCount, err = strconv.Atoi(raw.PeopleCount); err != nil {
		unparsed["PeopleCount"] = true
		problems = append(problems, fieldLabels["PeopleCount"]+" must be a whole number.")
	}
	if form.Budget, err = strconv.ParseFloat(raw.Budget, 64); err != nil || math.IsInf(form.Budget, 0) || math.IsNaN(form.Budget) {
		form.Budget = 0
		unparsed["Budget"] = true
		problems = append(problems, fieldLabels["Budget"]+" must be a number.")
	}

	if err := validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return form, raw, []string{"The form could not be read."}, err
		}
		for _, fe := range validationErrors {
			if unparsed[fe.Field()] {
				continue
			}
			problems = append(problems, validationMessage(fe))
		}
	}

	if len(problems) > 0 {
		return form, raw, problems, fmt.Errorf("%w: %s", errInvalidForm, strings.Join(problems, " "))
	}

	return form, raw, nil, nil
}

// validationMessage returns a human-readable validation error message
func validationMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "gt":
		return label + " must be greater than " + fe.Param() + "."
	case "lte":
		return label + " must be at most " + fe.Param() + "."
	case "max":
		return label + " is too long."
	default:
		return label + " is invalid."
	}
}

// Trip converts the form into a generator request.
func (f TripForm) Trip() itinerary.TripRequest {
	return itinerary.TripRequest{
		Origin:            f.Origin,
		Destination:       f.Destination,
		Days:              f.Days,
		Budget:            f.Budget,
		CuisinePreference: f.CuisinePreference,
		PeopleCount:       f.PeopleCount,
		Interests:         f.Interests,
	}
}
