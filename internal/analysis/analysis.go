// Package analysis asks an external service to find shared free windows
// across both schedules. The service is optional: with no endpoint
// configured, or on any failure, callers get a canned fallback result so
// the rest of the app never blocks on it.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bridgecal/internal/types"
)

// Window is a stretch of time when both people are reachable.
type Window struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Quality string `json:"quality"`
}

// Result is the analysis response.
type Result struct {
	OverlapWindows []Window `json:"overlapWindows"`
	Suggestions    []string `json:"suggestions"`
	Summary        string   `json:"summary"`
}

// FallbackResult is returned whenever the service cannot be reached or
// gives back something unusable.
func FallbackResult() *Result {
	return &Result{
		OverlapWindows: []Window{},
		Suggestions:    []string{"Couldn't analyze right now. Try a manual sync!"},
		Summary:        "Communication glitch with the stars.",
	}
}

type request struct {
	MyEvents      []types.CalendarEvent `json:"myEvents"`
	PartnerEvents []types.CalendarEvent `json:"partnerEvents"`
	MyZone        string                `json:"myZone"`
	PartnerZone   string                `json:"partnerZone"`
}

// Client talks to the analysis endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the given endpoint. An empty endpoint is
// allowed and makes Analyze return the fallback immediately.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Analyze sends both schedules and the two zone names to the service.
// It never returns an error: any failure degrades to FallbackResult.
func (c *Client) Analyze(ctx context.Context, myEvents, partnerEvents []types.CalendarEvent, myZone, partnerZone string) *Result {
	if c.endpoint == "" {
		return FallbackResult()
	}

	body, err := json.Marshal(request{
		MyEvents:      myEvents,
		PartnerEvents: partnerEvents,
		MyZone:        myZone,
		PartnerZone:   partnerZone,
	})
	if err != nil {
		return FallbackResult()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return FallbackResult()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FallbackResult()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FallbackResult()
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return FallbackResult()
	}
	if result.Summary == "" && len(result.OverlapWindows) == 0 && len(result.Suggestions) == 0 {
		return FallbackResult()
	}
	return &result
}

// FormatWindow renders one window for display.
func FormatWindow(w Window) string {
	return fmt.Sprintf("%s - %s (%s)", w.Start, w.End, w.Quality)
}
