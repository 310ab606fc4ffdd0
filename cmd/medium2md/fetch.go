package main

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/bluemonday"
	"github.com/fwojciec/medium2md/download"
	"github.com/fwojciec/medium2md/fs"
	"github.com/fwojciec/medium2md/goquery"
	"github.com/fwojciec/medium2md/htmltomarkdown"
	m2mhttp "github.com/fwojciec/medium2md/http"
	"github.com/fwojciec/medium2md/readability"
	"github.com/fwojciec/medium2md/rod"
	m2mslog "github.com/fwojciec/medium2md/slog"
	"github.com/fwojciec/medium2md/trafilatura"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	output := c.Output
	if output == "" {
		output = defaultOutputDir()
	}

	res, err := deps.Downloader.Download(deps.Ctx, c.URL, output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medium2md.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", res.Path)
	if len(res.Images) > 0 {
		fmt.Fprintf(deps.Stdout, "Downloaded %d images\n", len(res.Images))
	}
	if len(res.Removed) > 0 {
		fmt.Fprintf(deps.Stdout, "Removed %d unused files\n", len(res.Removed))
	}
	return nil
}

// NewFetcher returns the page fetcher selected by the --fetcher flag.
func (c *FetchCmd) NewFetcher() (medium2md.Fetcher, error) {
	switch c.Fetcher {
	case "http", "":
		return m2mhttp.NewFetcher(
			m2mhttp.WithTimeout(c.Timeout),
			m2mhttp.WithRateLimit(m2mhttp.NewHostLimiter(c.Rate)),
		), nil
	case "rod":
		f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithStealth(c.Stealth))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}
	return nil, medium2md.Errorf(medium2md.EINVALID, "unknown fetcher %q (want http or rod)", c.Fetcher)
}

// NewImageFetcher returns the HTTP image fetcher configured by the flags.
func (c *FetchCmd) NewImageFetcher() medium2md.ImageFetcher {
	return m2mhttp.NewImageFetcher(
		m2mhttp.WithTimeout(c.ImageTimeout),
		m2mhttp.WithRateLimit(m2mhttp.NewHostLimiter(c.Rate)),
	)
}

// NewExtractor returns the extractor selected by the --extractor flag.
func (c *FetchCmd) NewExtractor() (medium2md.Extractor, error) {
	pageURL, err := url.Parse(c.URL)
	if err != nil {
		return nil, medium2md.Errorf(medium2md.EINVALID, "invalid article URL %q: %v", c.URL, err)
	}

	switch c.Extractor {
	case "readability", "":
		return readability.NewExtractor(readability.WithPageURL(pageURL)), nil
	case "trafilatura":
		return trafilatura.NewExtractor(trafilatura.WithPageURL(pageURL)), nil
	}
	return nil, medium2md.Errorf(medium2md.EINVALID, "unknown extractor %q (want readability or trafilatura)", c.Extractor)
}

// NewDownloader wires the article pipeline for the selected profile.
//
// The default and rendered profiles store the images of the fetched page in
// media/ and localize what is left into local/ by basename. The static
// profile skips the page step and numbers images into assets/.
func (c *FetchCmd) NewDownloader(fetcher medium2md.Fetcher, images medium2md.ImageFetcher, logger *slog.Logger) (*download.Downloader, error) {
	profile, err := medium2md.ParseProfile(c.Profile)
	if err != nil {
		return nil, err
	}
	cleanup, err := medium2md.ParseCleanupMode(c.Cleanup)
	if err != nil {
		return nil, err
	}

	cfg := medium2md.DefaultStripConfig()
	cfg.TrailingLines = c.TrailingLines
	cfg.MinLines = c.MinLines
	stripper, err := medium2md.NewStripper(profile, cfg)
	if err != nil {
		return nil, err
	}

	extractor, err := c.NewExtractor()
	if err != nil {
		return nil, err
	}

	d := &download.Downloader{
		Fetcher:     fetcher,
		Extractor:   m2mslog.NewLoggingExtractor(extractor, logger),
		Sanitizer:   bluemonday.NewSanitizer(),
		Converter:   m2mslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger),
		Stripper:    stripper,
		Cleanup:     cleanup,
		Frontmatter: c.Frontmatter,
		Logger:      logger,
	}

	localizerOpts := []fs.LocalizerOption{
		fs.WithAnyAlt(c.AnyAlt),
		fs.WithConcurrency(c.Concurrency),
		fs.WithLogger(logger),
	}

	if profile == medium2md.ProfileStatic {
		d.Localizer = fs.NewLocalizer(images, append(localizerOpts,
			fs.WithNamer(medium2md.SequentialNamer{}),
			fs.WithFolder(medium2md.AssetsFolder),
		)...)
		return d, nil
	}

	d.Collector = goquery.NewImageCollector()
	d.Rewriter = goquery.NewImageRewriter()
	d.Media = fs.NewLocalizer(images, append(localizerOpts,
		fs.WithNamer(medium2md.SequentialNamer{}),
		fs.WithFolder(medium2md.MediaFolder),
	)...)
	d.Localizer = fs.NewLocalizer(images, append(localizerOpts,
		fs.WithNamer(medium2md.BasenameNamer{}),
		fs.WithFolder(medium2md.LocalFolder),
	)...)
	return d, nil
}
