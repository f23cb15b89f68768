package itinerary

import (
	"fmt"
	"strconv"
	"strings"
)

const noCuisinePreference = "no specific"

// BudgetPerDay is the budget available per traveler per day.
func BudgetPerDay(trip TripRequest) (float64, error) {
	if trip.Days <= 0 || trip.PeopleCount <= 0 {
		return 0, fmt.Errorf("%w: days=%d people=%d", ErrInvalidTrip, trip.Days, trip.PeopleCount)
	}
	return trip.Budget / float64(trip.Days) / float64(trip.PeopleCount), nil
}

// BuildPrompt renders the fixed itinerary prompt for a trip.
func BuildPrompt(trip TripRequest) (string, error) {
	perDay, err := BudgetPerDay(trip)
	if err != nil {
		return "", err
	}

	cuisine := strings.TrimSpace(trip.CuisinePreference)
	if cuisine == "" {
		cuisine = noCuisinePreference
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a visually appealing %d-day travel itinerary for %s. ", trip.Days, trip.Destination)
	fmt.Fprintf(&b, "The budget is $%s for %d people, approximately $%.2f per person per day. ",
		formatAmount(trip.Budget), trip.PeopleCount, perDay)
	fmt.Fprintf(&b, "The user prefers %s cuisine and is interested in %s. ", cuisine, trip.Interests)
	b.WriteString("Use bullet points or numbered lists for activities and dining recommendations. ")
	b.WriteString("Include estimated times, descriptions, and total daily costs.\n")
	b.WriteString("**Day 1:**\n")
	b.WriteString("- Morning (9:00 AM - 12:00 PM): [Activity] - [Description] - [Cost]\n")
	b.WriteString("- Lunch (12:00 PM - 1:00 PM): [Dining recommendation] - [Cost]\n")
	b.WriteString("- Afternoon (1:00 PM - 5:00 PM): [Activity] - [Description] - [Cost]\n")
	b.WriteString("- Evening (7:00 PM onwards): [Activity/Dinner] - [Cost]\n")
	b.WriteString("**Total Estimated Day 1 Cost:** [Total Cost]\n\n")
	b.WriteString("... Continue for each day.")
	return b.String(), nil
}

// formatAmount prints the shortest decimal that round-trips, so 900 stays "900".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
