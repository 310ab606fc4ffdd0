package mock

import "github.com/fwojciec/medium2md"

var _ medium2md.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of medium2md.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*medium2md.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*medium2md.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ medium2md.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of medium2md.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
