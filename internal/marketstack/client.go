package marketstack

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const baseURL = "http://api.marketstack.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=marketstack_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy controls retries against a rate-limited upstream. Only 429
// responses are retried; every other failure surfaces immediately.
type RetryPolicy struct {
	// MaxAttempts is the total number of requests, the first one included.
	MaxAttempts int
	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration
	// Multiplier scales the delay after each retry.
	Multiplier float64
}

// DefaultRetryPolicy retries twice with 500ms/1000ms delays.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, Multiplier: 2}
}

// Client is a client for the Marketstack EOD API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// query contains query parameters sent with each request, including the
	// access credential.
	query url.Values
	// retry governs the 429 retry loop.
	retry RetryPolicy
	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// ClientOption is a configuration option for the Marketstack client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryPolicy overrides the default 429 retry policy.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = policy
	}
}

// WithSleep replaces the inter-retry sleep function.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// NewClient creates a new Marketstack API client.
func NewClient(accessKey string, options ...ClientOption) (*Client, error) {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		query:      url.Values{},
		retry:      DefaultRetryPolicy(),
		sleep:      sleepCtx,
	}
	if accessKey != "" {
		// Marketstack authenticates via a query parameter.
		// https://marketstack.com/documentation
		client.query.Add("access_key", accessKey)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
