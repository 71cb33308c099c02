package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "fable-audiobook-player/1.0 (https://github.com/abertrand/fable)"

// Client fetches the book manifest from an externally hosted URL.
type Client struct {
	manifestURL string
	httpClient  *http.Client
}

// NewClient creates a manifest client for the given URL.
func NewClient(manifestURL string) *Client {
	return &Client{
		manifestURL: manifestURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// manifest is the wire shape of the hosted manifest document.
type manifest struct {
	Books []Book `json:"books"`
}

// Fetch downloads and decodes the manifest. On failure the caller is
// expected to degrade to an empty catalog; a failed fetch is never fatal.
func (c *Client) Fetch(ctx context.Context) ([]Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.manifestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m.Books, nil
}
