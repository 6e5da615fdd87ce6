package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// checks run one at a time, so a single kept-alive connection per host is enough
const (
	defaultMaxIdleConnsPerHost = 1
	defaultIdleConnTimeout     = 90 * time.Second
)

// Response is what one request to a [Target] produced.
type Response struct {
	// Body is the response body, truncated to 1MB.
	Body []byte

	// StatusCode is zero when the request failed before a response arrived.
	StatusCode int

	// Latency is the wall time of the request.
	Latency time.Duration

	// Error is set when the request could not be made or read.
	Error error
}

// Client fetches targets for repeated checks.
//
// Timeouts are applied per request from [Target.Timeout] rather than on the
// underlying http.Client, and keep-alives stay on so consecutive attempts
// against the same target reuse their connection.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a [Client] with its own connection pool.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Fetch performs one request against target.
//
// Fetch never returns an error directly; failures are recorded in
// [Response.Error] so that they become part of the observed value.
func (c *Client) Fetch(ctx context.Context, target Target) Response {
	timeout := target.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, target.method(), target.URL, nil)
	if err != nil {
		return Response{Latency: time.Since(start), Error: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, value := range target.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{Latency: time.Since(start), Error: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close releases idle connections. The client stays usable afterwards.
// Safe to call on a nil client and more than once.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}
