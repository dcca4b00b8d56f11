// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import (
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

// RenderRuns renders the runs of p in order. Bold runs are wrapped in
// <strong>; everything else is written as-is. Text is not escaped, and
// adjacent runs are never merged, so two bold runs "A","A" stay
// <strong>A</strong><strong>A</strong>.
func RenderRuns(p types.Paragraph) string {
	var b strings.Builder
	writeRuns(&b, p.Runs)
	return b.String()
}

func writeRuns(b *strings.Builder, runs []types.Run) {
	for _, r := range runs {
		if r.Bold {
			b.WriteString("<strong>")
			b.WriteString(r.Text)
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(r.Text)
	}
}
