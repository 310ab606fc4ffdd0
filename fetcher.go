package medium2md

import "context"

// Fetcher retrieves page HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ImageFetcher downloads image bytes.
type ImageFetcher interface {
	// FetchImage returns the body of a successful (200) response.
	// Any other status is reported as ENOTFOUND.
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// ImageCollector finds the images of a rendered page.
type ImageCollector interface {
	// CollectImages returns the absolute URL of every <img> in document
	// order, resolved against baseURL. Duplicates are kept.
	CollectImages(html, baseURL string) ([]string, error)
}

// ImageRewriter points <img> sources at local copies.
type ImageRewriter interface {
	// RewriteImages replaces the src of every <img> whose resolved URL is a
	// key of local with the mapped value.
	RewriteImages(html, baseURL string, local map[string]string) (string, error)
}
