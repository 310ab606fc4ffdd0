package medium2md

import (
	"net/url"
	"strings"
)

// Article is the lifecycle object of a single download run.
type Article struct {
	URL         string
	Title       string
	HTML        string   // page HTML as fetched
	ContentHTML string   // main content after extraction
	Markdown    string   // converted, then cleaned, then localized
	ImageURLs   []string // images discovered in the rendered page
}

// Validate returns an error if the article URL is not an absolute
// http or https URL.
func (a *Article) Validate() error {
	return ValidateURL(a.URL)
}

// ValidateURL returns EINVALID unless rawURL is an absolute http(s) URL
// with a host.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return Errorf(EINVALID, "article URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid article URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "article URL must use http or https: %q", rawURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "article URL has no host: %q", rawURL)
	}
	return nil
}

// Document is a Markdown file on disk. Content never includes the
// frontmatter block; Frontmatter is nil when the file has none.
type Document struct {
	Path        string
	Frontmatter *Frontmatter
	Content     string
}
