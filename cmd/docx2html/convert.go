// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2html/internal/convert"
	"github.com/pdiddy/docx2html/internal/ledger"
	"github.com/pdiddy/docx2html/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.docx|-> [output.html|-]",
	Short: "Convert DOCX files to HTML",
	Long: `Convert renders a DOCX document as HTML. Headings become h1/h2, fully
bold (or numbered, see --faq-policy) paragraphs become FAQ questions, list
paragraphs are grouped into ul/ol containers and tables are emitted with a
border. Text is written as-is without escaping.

The output defaults to <output_dir>/<name>.html, or next to the input when no
output directory is configured. Use "-" to read from stdin or write to stdout.

With --batch the argument is a directory: every .docx in it is converted,
existing outputs are skipped unless --force is given, and sources the ledger
has already converted at the same modification time are skipped too.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(cmd)
	log := logs.Get("convert")

	conv, err := convert.NewDocxConverter(cfg)
	if err != nil {
		return err
	}
	log.Debug("conversion policies", "faq_policy", cfg.FAQPolicy, "list_policy", cfg.ListPolicy)

	batch, _ := cmd.Flags().GetBool("batch")
	if batch {
		if len(args) != 1 {
			return fmt.Errorf("--batch takes exactly one directory")
		}
		return runBatch(cmd, conv, cfg, args[0])
	}

	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}

	// Streams bypass the ledger.
	if input == "-" || output == "-" {
		var html string
		if input == "-" {
			html, err = conv.ConvertReader(os.Stdin, "-")
		} else {
			html, err = conv.Convert(input)
		}
		if err != nil {
			return err
		}
		if output == "-" {
			_, err = io.WriteString(os.Stdout, html)
			return err
		}
		if output == "" {
			output = convert.OutputPath(input, cfg.OutputDir)
		}
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(os.Stdout, "converted: stdin -> %s\n", output)
		return nil
	}

	opts := convert.Options{
		OutputDir:  cfg.OutputDir,
		OutputPath: output,
		Force:      true,
		Logger:     log,
	}
	store, closeStore := openLedger(cmd)
	defer closeStore()
	if store != nil {
		opts.Ledger = store
	}

	src := types.SourceFile{ID: input, Path: input}
	if info, err := os.Stat(input); err == nil {
		src.ModTime = info.ModTime()
	}
	if status := convert.ConvertFile(cmd.Context(), conv, src, opts, os.Stdout); status == types.ConversionFailed {
		return fmt.Errorf("converting %s failed", input)
	}
	return nil
}

func runBatch(cmd *cobra.Command, conv convert.Converter, cfg types.ConversionConfig, dir string) error {
	log := logs.Get("convert")
	sources, err := convert.FindSources(dir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintf(os.Stdout, "no .docx files in %s\n", dir)
		return nil
	}

	opts := convert.Options{
		OutputDir: cfg.OutputDir,
		Force:     cfg.Force,
		Logger:    log,
	}
	store, closeStore := openLedger(cmd)
	defer closeStore()
	if store != nil {
		opts.Ledger = store
	}

	result, err := convert.ConvertBatch(cmd.Context(), conv, sources, opts, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// openLedger opens the ledger unless --no-ledger is set. A ledger that
// cannot be opened is logged and conversion continues without it.
func openLedger(cmd *cobra.Command) (*ledger.Store, func()) {
	if off, _ := cmd.Flags().GetBool("no-ledger"); off {
		return nil, func() {}
	}
	store, err := ledger.Open(ledgerConfig(cmd))
	if err != nil {
		logs.Get("ledger").Warn("ledger unavailable", "error", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

func init() {
	convertCmd.Flags().Bool("batch", false, "convert every .docx in the given directory")
	convertCmd.Flags().String("faq-policy", "", "FAQ question heuristic: bold or numbered (default bold)")
	convertCmd.Flags().String("list-policy", "", "list handling: distinct (ul and ol) or collapse (ul only)")
	convertCmd.Flags().String("output-dir", "", "directory for generated .html files")
	convertCmd.Flags().Bool("standalone", false, "wrap the output in a complete HTML page")
	convertCmd.Flags().Bool("force", false, "in batch mode, convert even when the output exists")
	convertCmd.Flags().String("ledger-dir", "", "directory holding the conversion ledger")
	convertCmd.Flags().Bool("no-ledger", false, "do not read or write the conversion ledger")

	rootCmd.AddCommand(convertCmd)
}
