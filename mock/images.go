package mock

import (
	"context"

	"github.com/fwojciec/medium2md"
)

var _ medium2md.ImageCollector = (*ImageCollector)(nil)

// ImageCollector is a mock implementation of medium2md.ImageCollector.
type ImageCollector struct {
	CollectImagesFn func(html, baseURL string) ([]string, error)
}

func (c *ImageCollector) CollectImages(html, baseURL string) ([]string, error) {
	return c.CollectImagesFn(html, baseURL)
}

var _ medium2md.ImageRewriter = (*ImageRewriter)(nil)

// ImageRewriter is a mock implementation of medium2md.ImageRewriter.
type ImageRewriter struct {
	RewriteImagesFn func(html, baseURL string, local map[string]string) (string, error)
}

func (r *ImageRewriter) RewriteImages(html, baseURL string, local map[string]string) (string, error) {
	return r.RewriteImagesFn(html, baseURL, local)
}

var _ medium2md.ImageDownloader = (*ImageDownloader)(nil)

// ImageDownloader is a mock implementation of medium2md.ImageDownloader.
type ImageDownloader struct {
	DownloadFn func(ctx context.Context, urls []string, outputDir string) ([]medium2md.LocalImage, error)
}

func (d *ImageDownloader) Download(ctx context.Context, urls []string, outputDir string) ([]medium2md.LocalImage, error) {
	return d.DownloadFn(ctx, urls, outputDir)
}

var _ medium2md.ImageLocalizer = (*ImageLocalizer)(nil)

// ImageLocalizer is a mock implementation of medium2md.ImageLocalizer.
type ImageLocalizer struct {
	LocalizeImagesFn func(ctx context.Context, text, outputDir string) (string, []medium2md.LocalImage, error)
}

func (l *ImageLocalizer) LocalizeImages(ctx context.Context, text, outputDir string) (string, []medium2md.LocalImage, error) {
	return l.LocalizeImagesFn(ctx, text, outputDir)
}
