// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives DOCX-to-HTML conversion of single files and whole
// directories: it resolves output paths, skips work that is already done,
// writes the HTML and records every outcome in the ledger.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/docx2html/internal/htmlconv"
	"github.com/pdiddy/docx2html/internal/ledger"
	"github.com/pdiddy/docx2html/internal/logging"
	"github.com/pdiddy/docx2html/internal/markup"
	"github.com/pdiddy/docx2html/pkg/types"
)

const (
	// sourceExt is the extension of files picked up by batch conversion.
	sourceExt = ".docx"

	// stdinOutput is the output name used when the input is read from stdin.
	stdinOutput = "output.html"
)

// Converter transforms a DOCX file into HTML text.
type Converter interface {
	// Convert reads the DOCX at path and returns the HTML content.
	Convert(path string) (string, error)
}

// Ledger is the subset of the ledger store used by the driver.
type Ledger interface {
	Record(ctx context.Context, e ledger.Entry) error
	Unchanged(ctx context.Context, path string, modTime time.Time) (bool, error)
}

// Options controls where output goes and what may be skipped.
type Options struct {
	// OutputDir receives <base>.html. Empty writes next to the input.
	OutputDir string

	// OutputPath overrides the computed output path for a single file.
	OutputPath string

	// Force converts even when the output exists or the ledger reports the
	// source unchanged.
	Force bool

	// Ledger records outcomes. Nil disables recording and incremental skips.
	Ledger Ledger

	// Logger receives diagnostics. Nil discards them.
	Logger logging.Logger
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.NoOp()
	}
	return o.Logger
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the HTML path for input: <base>.html in outputDir, or
// next to the input when outputDir is empty. Input "-" (stdin) maps to
// output.html.
func OutputPath(input, outputDir string) string {
	if input == "-" {
		return filepath.Join(outputDir, stdinOutput)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+htmlconv.Extension)
}

// ConvertFile converts one source, printing a status line to w. When the
// output already exists and a ledger is configured, the source is skipped
// with ConversionUnchanged only if the ledger has converted the same
// revision before; a changed source is converted again. Without a ledger,
// or when the lookup fails, an existing output is skipped with
// ConversionSkipped.
func ConvertFile(ctx context.Context, c Converter, src types.SourceFile, opts Options, w io.Writer) types.ConversionStatus {
	log := opts.logger()
	base := src.ID
	if base == "" {
		base = sourceID(src.Path)
	}
	outPath := opts.OutputPath
	if outPath == "" {
		outPath = OutputPath(src.Path, opts.OutputDir)
	}

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			same, known := unchanged(ctx, opts.Ledger, src, log)
			switch {
			case known && same:
				fmt.Fprintf(w, "skipped: %s (unchanged)\n", base)
				return types.ConversionUnchanged
			case known:
				log.Info("source changed since last conversion", "source", src.Path)
			default:
				fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
				return types.ConversionSkipped
			}
		}
	}

	entry := ledger.Entry{
		SourcePath:    src.Path,
		SourceModTime: src.ModTime,
		OutputPath:    outPath,
	}
	fail := func(err error) types.ConversionStatus {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		log.Error("conversion failed", "source", src.Path, "error", err)
		entry.Status = types.ConversionFailed
		entry.Error = err.Error()
		record(ctx, opts.Ledger, entry, log)
		return types.ConversionFailed
	}

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(err)
		}
	}

	out, err := c.Convert(src.Path)
	if err != nil {
		return fail(err)
	}

	stats, err := markup.Inspect(out)
	if err != nil {
		log.Warn("inspecting output", "source", src.Path, "error", err)
	} else if err := markup.Check(out); err != nil {
		log.Warn("unbalanced output", "source", src.Path, "error", err)
	}

	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fail(err)
	}

	entry.Status = types.ConversionDone
	entry.Stats = stats
	entry.Bytes = len(out)
	record(ctx, opts.Ledger, entry, log)

	fmt.Fprintf(w, "converted: %s (%s)\n", base, Summary(stats))
	log.Debug("converted", "source", src.Path, "output", outPath, "bytes", len(out))
	return types.ConversionDone
}

// ConvertBatch processes sources through the converter, printing per-file
// status to w and returning a summary. It stops early when ctx is done.
func ConvertBatch(ctx context.Context, c Converter, sources []types.SourceFile, opts Options, w io.Writer) (BatchResult, error) {
	opts.OutputPath = ""
	var result BatchResult
	for _, src := range sources {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		switch ConvertFile(ctx, c, src, opts, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped, types.ConversionUnchanged:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ConvertPaths builds SourceFile records from paths and delegates to
// ConvertBatch. Paths that cannot be stat'ed get a zero ModTime and fail
// at conversion.
func ConvertPaths(ctx context.Context, c Converter, paths []string, opts Options, w io.Writer) (BatchResult, error) {
	sources := make([]types.SourceFile, len(paths))
	for i, p := range paths {
		sources[i] = newSourceFile(p)
	}
	return ConvertBatch(ctx, c, sources, opts, w)
}

// FindSources lists the .docx files directly inside dir, sorted by name.
// Word lock files (~$name.docx) are ignored.
func FindSources(dir string) ([]types.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}
	var sources []types.SourceFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), sourceExt) || strings.HasPrefix(name, "~$") {
			continue
		}
		sources = append(sources, newSourceFile(filepath.Join(dir, name)))
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// Summary formats conversion counts for status lines.
func Summary(s types.MarkupStats) string {
	return fmt.Sprintf("%d headings, %d paragraphs, %d faqs, %d lists, %d tables",
		s.Headings, s.Paragraphs, s.FAQs, s.Lists, s.Tables)
}

func newSourceFile(path string) types.SourceFile {
	src := types.SourceFile{ID: sourceID(path), Path: path}
	if info, err := os.Stat(path); err == nil {
		src.ModTime = info.ModTime()
	}
	return src
}

func sourceID(path string) string {
	if path == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// unchanged asks the ledger whether src was converted at its current
// modification time. known is false when no answer is available.
func unchanged(ctx context.Context, l Ledger, src types.SourceFile, log logging.Logger) (same, known bool) {
	if l == nil || src.ModTime.IsZero() {
		return false, false
	}
	same, err := l.Unchanged(ctx, src.Path, src.ModTime)
	if err != nil {
		log.Warn("ledger lookup failed", "source", src.Path, "error", err)
		return false, false
	}
	return same, true
}

func record(ctx context.Context, l Ledger, e ledger.Entry, log logging.Logger) {
	if l == nil {
		return
	}
	if err := l.Record(ctx, e); err != nil {
		log.Warn("ledger record failed", "source", e.SourcePath, "error", err)
	}
}
