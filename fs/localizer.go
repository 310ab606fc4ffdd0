package fs

import (
	"cmp"
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/medium2md"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default number of parallel image downloads.
const DefaultConcurrency = 4

// Ensure Localizer implements the image interfaces at compile time.
var (
	_ medium2md.ImageDownloader = (*Localizer)(nil)
	_ medium2md.ImageLocalizer  = (*Localizer)(nil)
)

// Localizer downloads the remote images of a document into a folder of
// the output directory and rewrites their references to local paths.
type Localizer struct {
	fetcher     medium2md.ImageFetcher
	namer       medium2md.Namer
	folder      string
	anyAlt      bool
	concurrency int
	logger      *slog.Logger
}

// LocalizerOption configures a Localizer.
type LocalizerOption func(*Localizer)

// WithNamer sets the file naming scheme. Defaults to medium2md.BasenameNamer.
func WithNamer(n medium2md.Namer) LocalizerOption {
	return func(l *Localizer) {
		l.namer = n
	}
}

// WithFolder sets the image folder under the output directory.
// Defaults to medium2md.LocalFolder.
func WithFolder(folder string) LocalizerOption {
	return func(l *Localizer) {
		l.folder = folder
	}
}

// WithAnyAlt also localizes images that have alt text.
func WithAnyAlt(anyAlt bool) LocalizerOption {
	return func(l *Localizer) {
		l.anyAlt = anyAlt
	}
}

// WithConcurrency sets how many images are downloaded at once.
func WithConcurrency(n int) LocalizerOption {
	return func(l *Localizer) {
		l.concurrency = n
	}
}

// WithLogger sets the logger for skipped images.
func WithLogger(logger *slog.Logger) LocalizerOption {
	return func(l *Localizer) {
		l.logger = logger
	}
}

// NewLocalizer creates a Localizer that downloads images with fetcher.
func NewLocalizer(fetcher medium2md.ImageFetcher, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		fetcher:     fetcher,
		namer:       medium2md.BasenameNamer{},
		folder:      medium2md.LocalFolder,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}
	return l
}

// Folder returns the image folder name.
func (l *Localizer) Folder() string {
	return l.folder
}

// Localize rewrites every image reference of text whose image could be
// downloaded to the file's path relative to outputDir. It returns the
// updated text and the on-disk paths of the created files in order of
// first occurrence. Images that fail to download keep their remote URL.
func (l *Localizer) Localize(ctx context.Context, text, outputDir string) (string, []string, error) {
	text, images, err := l.LocalizeImages(ctx, text, outputDir)
	if err != nil {
		return "", nil, err
	}

	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.File
	}
	return text, paths, nil
}

// LocalizeImages is Localize returning the full record of every stored
// image.
func (l *Localizer) LocalizeImages(ctx context.Context, text, outputDir string) (string, []medium2md.LocalImage, error) {
	urls := medium2md.DistinctURLs(medium2md.FindImageRefs(text, l.anyAlt))
	if len(urls) == 0 {
		return text, nil, nil
	}

	images, err := l.Download(ctx, urls, outputDir)
	if err != nil {
		return "", nil, err
	}

	return ReplaceImageURLs(text, images), images, nil
}

// Download fetches each of urls once and writes it under
// outputDir/folder. Names are assigned from the position in urls before
// any download starts, so they don't depend on which downloads succeed.
// Failed downloads are logged and left out of the result; only context
// cancellation and write errors abort the call.
func (l *Localizer) Download(ctx context.Context, urls []string, outputDir string) ([]medium2md.LocalImage, error) {
	names := medium2md.AssignNames(urls, l.namer)
	dir := filepath.Join(outputDir, l.folder)
	results := make([]*medium2md.LocalImage, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, u := range urls {
		g.Go(func() error {
			data, err := l.fetcher.FetchImage(ctx, u)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.logger.Warn("image skipped", "url", u, "err", err)
				return nil
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			full := filepath.Join(dir, names[i])
			if err := os.WriteFile(full, data, 0644); err != nil {
				return err
			}

			results[i] = &medium2md.LocalImage{
				URL:  u,
				Name: names[i],
				Path: path.Join(filepath.ToSlash(l.folder), names[i]),
				File: full,
				Size: len(data),
				Hash: medium2md.ContentHash(data),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var images []medium2md.LocalImage
	for _, r := range results {
		if r != nil {
			images = append(images, *r)
		}
	}
	return images, nil
}

// ReplaceImageURLs replaces every occurrence of each image's remote URL in
// text with its local path. Longer URLs are replaced first so a URL that
// is a prefix of another never splits it.
func ReplaceImageURLs(text string, images []medium2md.LocalImage) string {
	if len(images) == 0 {
		return text
	}

	sorted := slices.Clone(images)
	slices.SortStableFunc(sorted, func(a, b medium2md.LocalImage) int {
		return cmp.Compare(len(b.URL), len(a.URL))
	})

	pairs := make([]string, 0, 2*len(sorted))
	for _, img := range sorted {
		pairs = append(pairs, img.URL, img.Path)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
