// Package upstream retrieves the third-party card dataset.
//
// The dataset is a JSON object mapping opaque upstream identifiers to a
// single-element array holding one card object. Member order is significant:
// card keys are assigned in the order the upstream document lists them.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/arcanaland/algodb/internal/card"
)

// DefaultURL is the published location of the dataset.
const DefaultURL = "https://calebgannon.com/wp-content/uploads/algomancy-extras/AlgomancyCards.json"

// FetchError wraps every failure to retrieve or decode the dataset.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch upstream %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client downloads the dataset over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client with the given request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch downloads and decodes the dataset at url.
func (c *Client) Fetch(ctx context.Context, url string) ([]card.Raw, error) {
	start := time.Now()
	c.logger.Info("fetching upstream cards", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200))}
	}

	records, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	c.logger.Info("fetched upstream cards",
		"records", len(records),
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))
	return records, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
