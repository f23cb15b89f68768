package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"itinerary/metrics"
)

// maxErrorBody caps how much of an upstream error body ends up in a StatusError.
const maxErrorBody = 512

// Client represents a client to communicate with the upstream APIs.
type Client struct {
	userAgent  string
	httpClient *http.Client
}

// StatusError is returned by JSON when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// NewBackendClient creates a new Client with the given request timeout and User-Agent.
func NewBackendClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do sends an HTTP request to an upstream and returns the response.
// The caller must close the response body.
func (c *Client) Do(ctx context.Context, method, url string, headers http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// Copy headers.
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return c.httpClient.Do(req)
}

// JSON sends in (if non-nil) as a JSON body and decodes the response into out.
// The upstream label is only used for metrics.
func (c *Client) JSON(ctx context.Context, upstream, method, url string, headers http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		if headers == nil {
			headers = http.Header{}
		}
		headers.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.Do(ctx, method, url, headers, body)
	if err != nil {
		metrics.ObserveUpstream(upstream, "transport_error", time.Since(start))
		return err
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(upstream, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
