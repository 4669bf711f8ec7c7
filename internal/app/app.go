// Package app runs a prosesift crawl: it fetches each source, extracts its text
// fragments, filters out code and undecided text, segments the rest into
// sentences and writes them as records.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriscorrea/prosesift/internal/config"
	"github.com/chriscorrea/prosesift/internal/counter"
	"github.com/chriscorrea/prosesift/internal/extract"
	"github.com/chriscorrea/prosesift/internal/fetch"
	"github.com/chriscorrea/prosesift/internal/record"
)

// Config holds all options of a run.
type Config struct {
	Sources        []string       // URLs, file paths, or "-" for stdin
	Settings       config.Config  // classifier, corpus and extraction settings
	MaxUnits       int            // per-page cap on sentence output, 0 for none
	CountingMethod counter.Method // unit of MaxUnits
	Pretty         bool           // indent records
	Quiet          bool           // suppress warnings
	Stderr         io.Writer      // warnings destination (default os.Stderr)
}

// Run builds the pipeline once and processes every source in order, writing records
// to out. A source that fails is reported and skipped; Run fails when no source
// could be processed.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources provided")
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	pipeline, err := NewPipeline(cfg.Settings, cfg.MaxUnits, cfg.CountingMethod)
	if err != nil {
		return err
	}

	w := record.NewWriter(out, cfg.Pretty)
	processed := 0
	for _, source := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := processSource(ctx, pipeline, source, cfg.Settings)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(cfg.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}
		processed++

		for _, rec := range records {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}

	if processed == 0 {
		return fmt.Errorf("no source could be processed")
	}
	slog.Debug("Crawl finished", "sources", processed, "failed", len(cfg.Sources)-processed, "records", w.Count())
	return nil
}

// processSource fetches and extracts one page and runs it through the pipeline.
// The whole page is processed before any of its records are written, so a page is
// either emitted completely and in order or not at all.
func processSource(ctx context.Context, pipeline *Pipeline, source string, settings config.Config) ([]record.Record, error) {
	page, err := fetch.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer page.Close()

	result, err := extract.Page(page.Body, extract.Options{
		Selector:    settings.Selector,
		Readability: settings.Readability,
		BaseURL:     page.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	records, err := pipeline.Process(result)
	if err != nil {
		return nil, fmt.Errorf("failed to process content: %w", err)
	}
	return records, nil
}
