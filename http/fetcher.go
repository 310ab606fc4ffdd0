// Package http provides net/http implementations of medium2md.Fetcher and
// medium2md.ImageFetcher for pages that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/medium2md"
)

// DefaultFetchTimeout is the default timeout for page requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultImageTimeout is the default timeout for image downloads.
const DefaultImageTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
// Medium serves a reduced page to clients without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Ensure Fetcher implements medium2md.Fetcher at compile time.
var _ medium2md.Fetcher = (*Fetcher)(nil)

// config holds the settings shared by Fetcher and ImageFetcher.
type config struct {
	timeout   time.Duration
	userAgent string
	limiter   *HostLimiter
}

// Option configures a Fetcher or an ImageFetcher.
type Option func(*config)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout for pages and DefaultImageTimeout for images.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithRateLimit throttles requests per host with the given limiter.
// A nil limiter disables rate limiting.
func WithRateLimit(l *HostLimiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

func newConfig(timeout time.Duration, opts []Option) config {
	c := config{
		timeout:   timeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client *http.Client
	config config
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	c := newConfig(DefaultFetchTimeout, opts)
	return &Fetcher{
		client: &http.Client{Timeout: c.timeout},
		config: c,
	}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, f.client, f.config, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and returns the body of a 200 response.
// Any other status is reported as ENOTFOUND.
func get(ctx context.Context, client *http.Client, c config, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, medium2md.Errorf(medium2md.EINVALID, "invalid URL %q", rawURL)
		}
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, medium2md.Errorf(medium2md.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}
