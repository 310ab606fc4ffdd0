// Package readability extracts the article body of a page with
// go-shiori/go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/medium2md"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements medium2md.Extractor at compile time.
var _ medium2md.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the address the HTML was fetched from. Relative image
// and link URLs in the content are resolved against it.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*medium2md.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, medium2md.Errorf(medium2md.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &medium2md.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
