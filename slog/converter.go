package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/medium2md"
)

// Ensure LoggingExtractor implements medium2md.Extractor.
var _ medium2md.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   medium2md.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next medium2md.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the title found.
func (e *LoggingExtractor) Extract(html string) (result *medium2md.ExtractResult, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if result != nil {
			title, size = result.Title, len(result.ContentHTML)
		}
		e.logger.Info("extract",
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingConverter implements medium2md.Converter.
var _ medium2md.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   medium2md.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next medium2md.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the output size.
func (c *LoggingConverter) Convert(html string) (md string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert",
			"in", len(html),
			"bytes", len(md),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
