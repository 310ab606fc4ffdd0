// Package goquery finds and rewrites <img> elements of rendered pages using
// PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medium2md"
)

// Ensure ImageCollector implements medium2md.ImageCollector.
var _ medium2md.ImageCollector = (*ImageCollector)(nil)

// ImageCollector lists the images of an HTML page.
type ImageCollector struct{}

// NewImageCollector creates a new ImageCollector.
func NewImageCollector() *ImageCollector {
	return &ImageCollector{}
}

// CollectImages returns the resolved source of every <img> in document
// order. Images without a usable source are skipped; duplicates are kept.
func (c *ImageCollector) CollectImages(html, baseURL string) ([]string, error) {
	base, doc, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if resolved := resolveURL(base, imageSource(sel)); resolved != "" {
			urls = append(urls, resolved)
		}
	})
	return urls, nil
}

// Ensure ImageRewriter implements medium2md.ImageRewriter.
var _ medium2md.ImageRewriter = (*ImageRewriter)(nil)

// ImageRewriter points <img> elements at downloaded copies.
type ImageRewriter struct{}

// NewImageRewriter creates a new ImageRewriter.
func NewImageRewriter() *ImageRewriter {
	return &ImageRewriter{}
}

// RewriteImages sets the src of each <img> whose resolved source is a key of
// local to the mapped path. The srcset attributes of rewritten images are
// removed so converters don't fall back to the remote candidates.
func (r *ImageRewriter) RewriteImages(html, baseURL string, local map[string]string) (string, error) {
	if len(local) == 0 {
		return html, nil
	}

	base, doc, err := parse(html, baseURL)
	if err != nil {
		return "", err
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		path, ok := local[resolveURL(base, imageSource(sel))]
		if !ok {
			return
		}
		sel.SetAttr("src", path)
		sel.RemoveAttr("srcset")
		sel.RemoveAttr("data-src")
	})

	// Fragments keep their body wrapper out of the output.
	if !strings.Contains(strings.ToLower(html), "<html") {
		return doc.Find("body").Html()
	}
	return goquery.OuterHtml(doc.Selection)
}

func parse(html, baseURL string) (*url.URL, *goquery.Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, medium2md.Errorf(medium2md.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, medium2md.Errorf(medium2md.EINVALID, "failed to parse HTML: %v", err)
	}
	return base, doc, nil
}

// imageSource returns the src of an <img>, falling back to data-src and then
// to the first srcset candidate for lazily loaded images.
func imageSource(sel *goquery.Selection) string {
	if src := strings.TrimSpace(sel.AttrOr("src", "")); src != "" && !isDataURL(src) {
		return src
	}
	if src := strings.TrimSpace(sel.AttrOr("data-src", "")); src != "" {
		return src
	}
	if srcset := strings.TrimSpace(sel.AttrOr("srcset", "")); srcset != "" {
		first, _, _ := strings.Cut(srcset, ",")
		if fields := strings.Fields(first); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

// resolveURL resolves src against base. Fragments are stripped.
// Returns empty string for unparseable or non-HTTP sources.
func resolveURL(base *url.URL, src string) string {
	if src == "" || isDataURL(src) {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func isDataURL(src string) bool {
	return strings.HasPrefix(strings.ToLower(src), "data:")
}
