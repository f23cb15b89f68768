package itinerary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTextGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeTextGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type denyAll struct{}

func (denyAll) Acquire(context.Context, string) (func(), bool) { return nil, false }

type countingSlots struct {
	acquired, released int
}

func (c *countingSlots) Acquire(context.Context, string) (func(), bool) {
	c.acquired++
	return func() { c.released++ }, true
}

var sampleTrip = TripRequest{
	Origin:      "Paris",
	Destination: "Rome",
	Days:        3,
	Budget:      900,
	PeopleCount: 3,
	Interests:   "art",
}

func TestGenerateSuccess(t *testing.T) {
	client := &fakeTextGenerator{text: "**Day 1:**\n- Morning: Colosseum"}
	slots := &countingSlots{}
	g := NewGenerator(client, slots)

	it, err := g.Generate(context.Background(), sampleTrip)
	require.NoError(t, err)

	assert.False(t, it.Failed())
	assert.Equal(t, "**Day 1:**\n- Morning: Colosseum", it.Text())
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "$100.00")
	assert.Equal(t, 1, slots.acquired)
	assert.Equal(t, 1, slots.released)
}

func TestGenerateAPIFailure(t *testing.T) {
	client := &fakeTextGenerator{err: context.DeadlineExceeded}
	g := NewGenerator(client, nil)

	it, err := g.Generate(context.Background(), sampleTrip)
	require.NoError(t, err)

	assert.True(t, it.Failed())
	assert.True(t, errors.Is(it.Err(), context.DeadlineExceeded))
	assert.True(t, strings.HasPrefix(it.Text(), "An error occurred during API call:"))
	assert.Contains(t, it.Text(), "context deadline exceeded")
}

func TestGenerateNoSlot(t *testing.T) {
	client := &fakeTextGenerator{text: "unused"}
	g := NewGenerator(client, denyAll{})

	it, err := g.Generate(context.Background(), sampleTrip)
	require.NoError(t, err)

	assert.True(t, it.Failed())
	assert.ErrorIs(t, it.Err(), ErrNoSlot)
	assert.Empty(t, client.prompts, "text API must not be called without a slot")
}

func TestGenerateInvalidTrip(t *testing.T) {
	client := &fakeTextGenerator{text: "unused"}
	g := NewGenerator(client, nil)

	trip := sampleTrip
	trip.PeopleCount = 0
	_, err := g.Generate(context.Background(), trip)
	assert.ErrorIs(t, err, ErrInvalidTrip)
	assert.Empty(t, client.prompts)
}
