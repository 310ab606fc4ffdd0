// Package bluemonday removes scripts, styles and unsafe attributes from
// extracted article HTML before it is converted to Markdown.
package bluemonday

import (
	"github.com/fwojciec/medium2md"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements medium2md.Sanitizer at compile time.
var _ medium2md.Sanitizer = (*Sanitizer)(nil)

// Sanitizer applies a bluemonday policy. The default policy is
// bluemonday.UGCPolicy, which keeps headings, links, images, lists, tables
// and code blocks.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithPolicy replaces the default policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(s *Sanitizer) {
		s.policy = p
	}
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer(opts ...Option) *Sanitizer {
	s := &Sanitizer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		s.policy = articlePolicy()
	}
	return s
}

// Sanitize returns html with everything outside the policy removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// articlePolicy is UGCPolicy without rel="nofollow" rewriting.
func articlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	return p
}
