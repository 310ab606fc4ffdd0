package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/medium2md"
)

// Ensure ImageFetcher implements medium2md.ImageFetcher at compile time.
var _ medium2md.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads image bytes over HTTP.
// ImageFetcher is safe for concurrent use by multiple goroutines.
type ImageFetcher struct {
	client *http.Client
	config config
}

// NewImageFetcher creates an ImageFetcher. The timeout defaults to
// DefaultImageTimeout.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	c := newConfig(DefaultImageTimeout, opts)
	return &ImageFetcher{
		client: &http.Client{Timeout: c.timeout},
		config: c,
	}
}

// FetchImage returns the body of a 200 response for url.
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return get(ctx, f.client, f.config, url)
}
