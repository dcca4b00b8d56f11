// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2html/internal/ledger"
	"github.com/pdiddy/docx2html/pkg/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the conversion ledger (list, export)",
	Long: `Ledger reads the local SQLite database in which every conversion outcome
is recorded: source path and modification time, output path, status, element
counts and the error for failed files.`,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, most recent first",
	RunE:  runLedgerList,
}

func runLedgerList(cmd *cobra.Command, args []string) error {
	store, err := ledger.Open(ledgerConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), filterFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLedgerOutput(entries, jsonOutput)
}

func formatLedgerOutput(entries []ledger.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-9s  %-6s  %-8s  %s\n", "Source", "Status", "Blocks", "Bytes", "Converted")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, e := range entries {
		src := e.SourcePath
		if len(src) > 40 {
			src = "..." + src[len(src)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-9s  %-6d  %-8d  %s\n",
			src, e.Status, e.Stats.Blocks(), e.Bytes, e.ConvertedAt.Local().Format("2006-01-02 15:04"))
		if e.Error != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", e.Error)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

var ledgerExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to YAML or JSON",
	Long: `Export writes the recorded conversions (or a filtered subset) to
ledger.yaml or ledger.json in the ledger directory, or in --out when given.`,
	RunE: runLedgerExport,
}

func runLedgerExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := ledger.Open(ledgerConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	filter := filterFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), filter, out)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), filter, out)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

func filterFromFlags(cmd *cobra.Command) ledger.Filter {
	status, _ := cmd.Flags().GetString("status")
	prefix, _ := cmd.Flags().GetString("prefix")
	limit, _ := cmd.Flags().GetInt("limit")
	return ledger.Filter{
		Status:     types.ConversionStatus(status),
		PathPrefix: prefix,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	ledgerCmd.PersistentFlags().String("ledger-dir", "", "directory holding the conversion ledger")
	ledgerCmd.PersistentFlags().String("status", "", "filter by status: converted or failed")
	ledgerCmd.PersistentFlags().String("prefix", "", "filter by source path prefix")

	ledgerListCmd.Flags().Int("limit", 0, "maximum entries (0 = use default)")
	ledgerListCmd.Flags().Bool("json", false, "output entries as JSON")

	ledgerExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	ledgerExportCmd.Flags().String("out", "", "directory for the export file (default: ledger directory)")

	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerExportCmd)

	rootCmd.AddCommand(ledgerCmd)
}
