package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docx2html/internal/docx"
	"github.com/pdiddy/docx2html/internal/htmlconv"
	"github.com/pdiddy/docx2html/internal/textdiff"
	"github.com/pdiddy/docx2html/pkg/types"
)

var diffCmd = &cobra.Command{
	Use:   "diff <input.docx|->",
	Short: "Show a line diff between the source text and the generated HTML",
	Long: `Diff prints a unified diff between the plain text of the document's
top-level paragraphs and the HTML lines the converter emits for it. It is a
review aid: every paragraph shows up as a changed line wrapped in its tag,
dropped blank paragraphs show as deletions and tables as additions.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	input := args[0]
	cfg := conversionConfig(cmd)

	hc, err := htmlconv.NewConverter(cfg)
	if err != nil {
		return err
	}

	var doc *types.Document
	if input == "-" {
		doc, err = docx.Read(os.Stdin, input)
	} else {
		doc, err = docx.Open(input)
	}
	if err != nil {
		return err
	}

	source := htmlconv.PlainText(doc)
	output := strings.Join(hc.Lines(doc), "\n")

	if textdiff.Equal(source, output) {
		fmt.Fprintln(os.Stdout, "no differences")
		return nil
	}
	diff, err := textdiff.Unified(source, output, input, outputName(input))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, diff)
	return err
}

func outputName(input string) string {
	if input == "-" {
		return "output.html"
	}
	return strings.TrimSuffix(input, ".docx") + htmlconv.Extension
}

func init() {
	diffCmd.Flags().String("faq-policy", "", "FAQ question heuristic: bold or numbered")
	diffCmd.Flags().String("list-policy", "", "list handling: distinct or collapse")

	rootCmd.AddCommand(diffCmd)
}
