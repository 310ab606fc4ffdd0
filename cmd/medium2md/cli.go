package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/medium2md"
	"github.com/fwojciec/medium2md/download"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Downloader   *download.Downloader
	ImageFetcher medium2md.ImageFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Fetch    FetchCmd    `cmd:"" help:"Download an article as Markdown"`
	Clean    CleanCmd    `cmd:"" help:"Strip boilerplate from every Markdown file in a directory"`
	Localize LocalizeCmd `cmd:"" help:"Download the remote images of the Markdown file in a directory"`
	Tidy     TidyCmd     `cmd:"" help:"Remove downloaded images no Markdown file references"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL           string        `arg:"" help:"Article URL"`
	Output        string        `short:"o" env:"MEDIUM2MD_OUTPUT" help:"Output directory (default: output/ next to the executable)"`
	Profile       string        `short:"p" default:"default" env:"MEDIUM2MD_PROFILE" help:"Boilerplate profile: default, rendered or static"`
	Fetcher       string        `default:"http" help:"Page fetcher: http or rod"`
	Extractor     string        `default:"readability" help:"Article extractor: readability or trafilatura"`
	Stealth       bool          `help:"Hide browser automation from the site (rod fetcher only)"`
	Cleanup       string        `default:"prune" help:"Image cleanup: prune, all or none"`
	Frontmatter   bool          `help:"Write a YAML frontmatter block"`
	Timeout       time.Duration `short:"t" default:"10s" env:"MEDIUM2MD_TIMEOUT" help:"Page fetch timeout"`
	ImageTimeout  time.Duration `default:"30s" help:"Image download timeout"`
	Concurrency   int           `short:"c" default:"4" help:"Concurrent image downloads"`
	Rate          float64       `default:"0" help:"Requests per second per host (0 disables)"`
	TrailingLines int           `default:"5" help:"Lines dropped from the end of the article"`
	MinLines      int           `default:"1" help:"Lines the trailing trim never goes below"`
	AnyAlt        bool          `help:"Localize images with alt text too"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	Dir           string `arg:"" help:"Directory with Markdown files"`
	Profile       string `short:"p" default:"default" env:"MEDIUM2MD_PROFILE" help:"Boilerplate profile: default, rendered or static"`
	TrailingLines int    `default:"5" help:"Lines dropped from the end of each file"`
	MinLines      int    `default:"1" help:"Lines the trailing trim never goes below"`
}

// LocalizeCmd is the "localize" subcommand.
type LocalizeCmd struct {
	Dir          string        `arg:"" help:"Directory with a single Markdown file"`
	Folder       string        `default:"local" help:"Image folder inside the directory"`
	Sequential   bool          `help:"Name images media_N instead of by URL basename"`
	AnyAlt       bool          `help:"Localize images with alt text too"`
	Concurrency  int           `short:"c" default:"4" help:"Concurrent image downloads"`
	ImageTimeout time.Duration `default:"30s" help:"Image download timeout"`
}

// TidyCmd is the "tidy" subcommand.
type TidyCmd struct {
	Dir string `arg:"" help:"Output directory"`
	All bool   `help:"Remove the image folders entirely"`
}
