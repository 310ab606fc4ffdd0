package mock

import (
	"context"

	"github.com/fwojciec/medium2md"
)

var _ medium2md.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of medium2md.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ medium2md.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of medium2md.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return f.FetchImageFn(ctx, url)
}
