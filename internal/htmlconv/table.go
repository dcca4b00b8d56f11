// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import (
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

const tableOpen = "<table border='1' cellpadding='8' cellspacing='0'>"

// TableToHTML renders t as a bordered table, one markup line per tag.
// Every paragraph of a cell is rendered with RenderRuns and the results are
// concatenated with no separator. Cell paragraphs are not classified.
func TableToHTML(t types.Table) string {
	return strings.Join(tableLines(t), "\n")
}

func tableLines(t types.Table) []string {
	lines := make([]string, 0, 2+len(t.Rows)*4)
	lines = append(lines, tableOpen)
	for _, row := range t.Rows {
		lines = append(lines, "<tr>")
		for _, cell := range row.Cells {
			lines = append(lines, "<td>"+cellHTML(cell)+"</td>")
		}
		lines = append(lines, "</tr>")
	}
	return append(lines, "</table>")
}

func cellHTML(c types.Cell) string {
	var b strings.Builder
	for _, p := range c.Paragraphs {
		writeRuns(&b, p.Runs)
	}
	return b.String()
}
