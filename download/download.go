// Package download runs the article pipeline: fetch, localize rendered
// images, extract, convert, strip boilerplate, localize the remaining
// images and write the Markdown file.
package download

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/fs"
)

// Downloader turns one article URL into a Markdown file in an output
// directory. Fetcher, Extractor, Converter and Stripper are required; the
// other collaborators switch optional steps on.
type Downloader struct {
	Fetcher   medium2md.Fetcher
	Extractor medium2md.Extractor
	Sanitizer medium2md.Sanitizer
	Converter medium2md.Converter
	Stripper  *medium2md.Stripper

	// Collector, Rewriter and Media together enable the rendered-page
	// step: every image of the fetched page is stored before extraction
	// and the page is rewritten to point at the stored copies.
	Collector medium2md.ImageCollector
	Rewriter  medium2md.ImageRewriter
	Media     medium2md.ImageDownloader

	// Localizer downloads the images still remote in the cleaned document.
	Localizer medium2md.ImageLocalizer

	Cleanup     medium2md.CleanupMode
	Frontmatter bool
	Logger      *slog.Logger
	Now         func() time.Time
}

// Result describes a saved article.
type Result struct {
	Path    string
	Title   string
	Images  []medium2md.LocalImage
	Removed []string
}

// Download fetches rawURL and writes the cleaned article into outputDir.
// All files are staged first; outputDir only changes when every step
// succeeds.
func (d *Downloader) Download(ctx context.Context, rawURL, outputDir string) (*Result, error) {
	if err := medium2md.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	store := fs.NewOutputStore(outputDir)
	staging, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("open output directory: %w", err)
	}

	res, err := d.run(ctx, &medium2md.Article{URL: rawURL}, staging, outputDir)
	if err != nil {
		_ = store.Abort()
		return nil, err
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return nil, fmt.Errorf("commit output: %w", err)
	}

	res.Path = filepath.Join(outputDir, filepath.Base(res.Path))
	for i, p := range res.Removed {
		res.Removed[i] = rebase(p, staging, outputDir)
	}
	for i, img := range res.Images {
		res.Images[i].File = rebase(img.File, staging, outputDir)
	}
	d.logger().Info("article saved", "path", res.Path, "images", len(res.Images), "removed", len(res.Removed))
	return res, nil
}

func (d *Downloader) validate() error {
	switch {
	case d.Fetcher == nil:
		return medium2md.Errorf(medium2md.EINVALID, "fetcher required")
	case d.Extractor == nil:
		return medium2md.Errorf(medium2md.EINVALID, "extractor required")
	case d.Converter == nil:
		return medium2md.Errorf(medium2md.EINVALID, "converter required")
	case d.Stripper == nil:
		return medium2md.Errorf(medium2md.EINVALID, "stripper required")
	}
	return nil
}

// run writes the article into the staging directory dir. Image names are
// claimed against outputDir so the commit never replaces another
// article's files.
func (d *Downloader) run(ctx context.Context, a *medium2md.Article, dir, outputDir string) (*Result, error) {
	html, err := d.Fetcher.Fetch(ctx, a.URL)
	if err != nil {
		return nil, err
	}
	a.HTML = html

	// With CleanupAll the document keeps its remote image URLs, so no
	// image is downloaded in the first place.
	keepImages := d.Cleanup != medium2md.CleanupAll

	var media []medium2md.LocalImage
	if keepImages && d.Collector != nil && d.Rewriter != nil && d.Media != nil {
		if media, err = d.downloadRendered(ctx, a, dir); err != nil {
			return nil, err
		}
	}

	extracted, err := d.Extractor.Extract(a.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	a.Title = extracted.Title
	a.ContentHTML = extracted.ContentHTML
	if d.Sanitizer != nil {
		a.ContentHTML = d.Sanitizer.Sanitize(a.ContentHTML)
	}

	md, err := d.Converter.Convert(a.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	a.Markdown = fs.ReplaceImageURLs(d.Stripper.Strip(md), media)
	images := media

	if a.Title == "" {
		a.Title, _ = medium2md.FirstHeading(md)
	}

	if keepImages && d.Localizer != nil {
		text, local, err := d.Localizer.LocalizeImages(ctx, a.Markdown, dir)
		if err != nil {
			return nil, err
		}
		a.Markdown = text
		images = append(images, local...)
	}

	if a.Markdown, images, err = fs.ClaimNames(a.Markdown, images, outputDir); err != nil {
		return nil, fmt.Errorf("claim image names: %w", err)
	}

	doc := &medium2md.Document{
		Path:    filepath.Join(dir, medium2md.MarkdownFileName(a.Title)),
		Content: a.Markdown,
	}
	if d.Frontmatter {
		doc.Frontmatter = &medium2md.Frontmatter{
			Source:  a.URL,
			Title:   a.Title,
			Fetched: d.now().UTC().Truncate(time.Second),
			Images:  referencedPaths(a.Markdown, images),
		}
	}
	if err := fs.WriteDocument(doc); err != nil {
		return nil, fmt.Errorf("write %s: %w", filepath.Base(doc.Path), err)
	}

	removed, err := fs.Tidy(dir, d.Cleanup, medium2md.ImageFolders()...)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}

	return &Result{
		Path:    doc.Path,
		Title:   a.Title,
		Images:  images,
		Removed: removed,
	}, nil
}

// downloadRendered stores the images of the fetched page. The page is
// rewritten so that every image carries its resolved URL in src, which is
// the URL the converted document refers to.
func (d *Downloader) downloadRendered(ctx context.Context, a *medium2md.Article, dir string) ([]medium2md.LocalImage, error) {
	all, err := d.Collector.CollectImages(a.HTML, a.URL)
	if err != nil {
		return nil, fmt.Errorf("collect images: %w", err)
	}

	var refs []medium2md.ImageRef
	for _, u := range all {
		if medium2md.IsImageURL(u) {
			refs = append(refs, medium2md.ImageRef{URL: u})
		}
	}
	a.ImageURLs = medium2md.DistinctURLs(refs)
	if len(a.ImageURLs) == 0 {
		return nil, nil
	}

	resolved := make(map[string]string, len(a.ImageURLs))
	for _, u := range a.ImageURLs {
		resolved[u] = u
	}
	html, err := d.Rewriter.RewriteImages(a.HTML, a.URL, resolved)
	if err != nil {
		return nil, fmt.Errorf("rewrite images: %w", err)
	}
	a.HTML = html

	return d.Media.Download(ctx, a.ImageURLs, dir)
}

func (d *Downloader) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

func (d *Downloader) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// rebase moves p from under staging to the same place under outputDir.
func rebase(p, staging, outputDir string) string {
	rel, err := filepath.Rel(staging, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.Join(outputDir, rel)
}

// referencedPaths lists the paths of the images text still points at.
func referencedPaths(text string, images []medium2md.LocalImage) []string {
	var paths []string
	for _, img := range images {
		if strings.Contains(text, img.Path) {
			paths = append(paths, img.Path)
		}
	}
	return paths
}
