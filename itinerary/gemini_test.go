package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itinerary/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewGeminiClient(backend.NewBackendClient(2*time.Second, "test"), srv.URL+"/", "key-123", "gemini-1.5-flash")
	require.NoError(t, err)
	return c
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(backend.NewBackendClient(time.Second, ""), "http://localhost", "", "gemini-1.5-flash")
	require.Error(t, err)
}

func TestGeminiGenerateContent(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))

		var req geminiReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "plan a trip", req.Contents[0].Parts[0].Text)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"**Day 1:**\n"},{"text":"- Morning"}]},"finishReason":"STOP"}]}`)
	})

	text, err := c.GenerateContent(context.Background(), "plan a trip")
	require.NoError(t, err)
	assert.Equal(t, "**Day 1:**\n- Morning", text)
}

func TestGeminiBlockedPrompt(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := c.GenerateContent(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGeminiErrorStatus(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"API key not valid"}}`)
	})

	_, err := c.GenerateContent(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiTimeoutBecomesFailedItinerary(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	g := NewGenerator(c, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	it, err := g.Generate(ctx, sampleTrip)
	require.NoError(t, err)
	assert.True(t, it.Failed())
	assert.Regexp(t, `^An error occurred during API call: `, it.Text())
}
