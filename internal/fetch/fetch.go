// Package fetch is the HTTP boundary of the scrapers: retrieve the raw
// bytes of a URL, nothing more. Retry policy lives with the callers (the
// only retry in the program is the home/away swap in internal/odds).
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	UserAgent = "nfl-spreads-cli/1.0 (github.com/pfrederiksen/nfl-spreads)"
	Timeout   = 30 * time.Second
)

// Fetcher retrieves the document at a URL. Implementations must be safe
// for concurrent use; the season fetcher shares one across its workers.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client is the production Fetcher, a thin wrapper over net/http with a
// timeout and a polite User-Agent.
type Client struct {
	client    *http.Client
	userAgent string
}

// New creates a Client with the default timeout and User-Agent.
func New() *Client {
	return NewWith(Timeout, UserAgent)
}

// NewWith creates a Client with an explicit timeout and User-Agent.
func NewWith(timeout time.Duration, userAgent string) *Client {
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves the body of url. Non-200 statuses are errors.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
