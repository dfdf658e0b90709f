// Package counter fetches the anonymous usage counter. The counter is
// cosmetic: every failure mode degrades to "no value" and nothing here may
// ever affect pricing, saving, or exporting.
package counter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Client is a best-effort reader for a hit-counter endpoint returning a JSON
// body with a numeric "value" field.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// New builds a client for the given endpoint. An empty URL disables the
// counter entirely.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the counter value and whether one is available. Network
// errors, timeouts, bad statuses, and malformed bodies all return (0, false);
// there is no error path.
func (c *Client) Fetch(ctx context.Context) (int64, bool) {
	if c.url == "" {
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return 0, false
	}

	var payload struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Value == nil {
		return 0, false
	}
	return int64(*payload.Value), true
}
