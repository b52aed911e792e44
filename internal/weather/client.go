package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent identifies this client to api.weather.gov, which
	// rejects requests without one.
	DefaultUserAgent = "zipcast/1.0 (contact@wthr.lol)"
	DefaultTimeout   = 10 * time.Second
)

// Fetcher performs a single GET and returns the response body.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client handles NWS API requests
type Client struct {
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a client with a fixed user agent and request timeout.
// An empty userAgent or non-positive timeout selects the defaults.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches url once. Transport failures and non-2xx responses are
// returned as *NetworkError; the body of an error response is not returned.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return nil, &NetworkError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchTotal.WithLabelValues("status").Inc()
		return nil, &NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("NWS API error: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	fetchTotal.WithLabelValues("ok").Inc()
	return body, nil
}
