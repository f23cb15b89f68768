package itinerary

import (
	"context"
	"errors"
	"time"

	"itinerary/logging"
	"itinerary/metrics"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// TextGenerator is implemented by generative text API clients.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SlotAcquirer bounds concurrent calls to an upstream.
type SlotAcquirer interface {
	Acquire(ctx context.Context, upstream string) (func(), bool)
}

// ErrNoSlot is the failure reason when the text API is saturated.
var ErrNoSlot = errors.New("too many itineraries are being generated, please try again later")

// Generator turns trip requests into itineraries.
type Generator struct {
	client TextGenerator
	slots  SlotAcquirer
}

// NewGenerator creates a Generator. slots may be nil to disable the concurrency limit.
func NewGenerator(client TextGenerator, slots SlotAcquirer) *Generator {
	return &Generator{client: client, slots: slots}
}

// Generate builds the prompt for trip and calls the text API once.
// The only error it returns is ErrInvalidTrip; API failures come back as a failed Itinerary.
func (g *Generator) Generate(ctx context.Context, trip TripRequest) (Itinerary, error) {
	prompt, err := BuildPrompt(trip)
	if err != nil {
		return Itinerary{}, err
	}

	if g.slots != nil {
		release, ok := g.slots.Acquire(ctx, UpstreamGemini)
		if !ok {
			metrics.CountGeneration("error")
			return FailedWith(ErrNoSlot), nil
		}
		defer release()
	}

	start := time.Now()
	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Errorf("Itinerary generation for %q failed after %s: %v", trip.Destination, time.Since(start), err)
		metrics.CountGeneration("error")
		return FailedWith(err), nil
	}

	log.Debugf("Itinerary for %q generated in %s (%d bytes)", trip.Destination, time.Since(start), len(text))
	metrics.CountGeneration("ok")
	return Succeeded(text), nil
}
