// Package catalog is the client-side companion to the biota API: a
// small HTTP client plus an in-memory store supporting the substring
// search the gallery UI runs over the loaded catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aquabio-be/internal/entities"
)

// Client fetches catalog entries from the REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL (no trailing
// slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken attaches a bearer credential to subsequent requests. Reads
// don't require one; it is passed through when present.
func (c *Client) SetToken(token string) {
	c.token = token
}

// FetchEntries retrieves the full catalog from GET /api/biota.
func (c *Client) FetchEntries(ctx context.Context) ([]entities.BiotaEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/biota", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	var entries []entities.BiotaEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return entries, nil
}
