// Package sync replicates the bridge envelope to and from the remote
// store: whole-record PUT on every local mutation, polled GET with
// union-by-id merge on an interval.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bridgecal/internal/types"
)

// ErrNotFound is returned when the bridge record does not exist remotely.
var ErrNotFound = errors.New("bridge record not found")

// APIError represents a non-2xx response from the remote store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bridge store error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("bridge store error (%d)", e.Status)
}

// Client talks to the remote bridge store. The protocol is a single JSON
// record: PUT <endpoint>/<id> with the full envelope, GET <endpoint>/<id>
// returning the same shape or 404.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// NormalizeBaseURL validates the endpoint and strips trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("bridge endpoint cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid bridge endpoint: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("bridge endpoint must include scheme (https://)")
	}
	return strings.TrimRight(value, "/"), nil
}

// Put replaces the remote record wholesale. Any 2xx is success.
func (c *Client) Put(ctx context.Context, id string, data types.SharedData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.recordURL(id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Get fetches the remote record, or ErrNotFound when it is absent.
func (c *Client) Get(ctx context.Context, id string) (*types.SharedData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordURL(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	var data types.SharedData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode bridge record: %w", err)
	}
	return &data, nil
}

func (c *Client) recordURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func readAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
}
