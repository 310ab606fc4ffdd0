package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medium2md"
	m2mhttp "github.com/fwojciec/medium2md/http"
	m2mslog "github.com/fwojciec/medium2md/slog"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetchers for end-to-end testing. When nil, Run builds them from the
	// command flags.
	Fetcher      medium2md.Fetcher
	ImageFetcher medium2md.ImageFetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medium2md"),
		kong.Description("Download Medium articles as cleaned local Markdown files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medium2md --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	switch kongCtx.Command() {
	case "fetch <url>":
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher, err = cli.Fetch.NewFetcher()
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", medium2md.ErrorMessage(err))
				return err
			}
			defer fetcher.Close()
		}

		imageFetcher := m.ImageFetcher
		if imageFetcher == nil {
			imageFetcher = cli.Fetch.NewImageFetcher()
		}

		deps.Downloader, err = cli.Fetch.NewDownloader(
			m2mslog.NewLoggingFetcher(fetcher, deps.Logger),
			m2mslog.NewLoggingImageFetcher(imageFetcher, deps.Logger),
			deps.Logger,
		)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", medium2md.ErrorMessage(err))
			return err
		}

	case "localize <dir>":
		imageFetcher := m.ImageFetcher
		if imageFetcher == nil {
			imageFetcher = m2mhttp.NewImageFetcher(m2mhttp.WithTimeout(cli.Localize.ImageTimeout))
		}
		deps.ImageFetcher = m2mslog.NewLoggingImageFetcher(imageFetcher, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w. Without verbose only warnings and
// errors are written.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// defaultOutputDir returns the output folder next to the executable.
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "output"
	}
	return filepath.Join(filepath.Dir(exe), "output")
}
