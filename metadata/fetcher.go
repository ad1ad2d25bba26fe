package metadata

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/html"
)

// userAgent is sent on every outbound fetch. Some shop pages refuse requests
// without a browser-looking agent string.
const userAgent = "Mozilla/5.0"

// DefaultFetchTimeout bounds the single outbound GET per fetch.
const DefaultFetchTimeout = 10 * time.Second

// Client fetches remote pages and parses them into HTML documents. It issues
// exactly one GET per Fetch call and never retries.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch retrieves a URL and parses the response body as HTML. Network
// errors, timeouts and 4xx/5xx statuses all yield an error carrying no
// partial document.
func (c *Client) Fetch(url string) (*html.Node, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for '%s': %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("failed to get URL '%s': status code %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response from '%s': %w", url, err)
	}
	return doc, nil
}
