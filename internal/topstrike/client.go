// Package topstrike proxies the TopStrike game's own fixtures endpoint. The
// endpoint sits behind CORS, so the browser cannot call it directly; this
// client fetches server-side with a browser-like header profile and forwards
// the raw JSON untouched.
package topstrike

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches the upstream fixtures feed.
type Client struct {
	fixturesURL string
	origin      string
	cookies     string
	httpClient  *http.Client
}

// NewClient creates a TopStrike proxy client. cookies is the raw Cookie header
// value; empty means the request goes out unauthenticated.
func NewClient(fixturesURL, origin, cookies string, timeout time.Duration) *Client {
	return &Client{
		fixturesURL: fixturesURL,
		origin:      origin,
		cookies:     cookies,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchFixtures returns the raw upstream response body and status code. A
// non-2xx upstream answer is not an error here; the handler mirrors the
// status to the browser.
func (c *Client) FetchFixtures(ctx context.Context) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fixturesURL, nil)
	if err != nil {
		return nil, 0, err
	}

	// The upstream only answers requests that look like its own frontend.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Referer", c.origin+"/")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	if c.cookies != "" {
		req.Header.Set("Cookie", c.cookies)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read fixtures response: %w", err)
	}

	return body, resp.StatusCode, nil
}
