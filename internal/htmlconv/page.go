// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import (
	"fmt"
	"html"
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

// MIMEType is the media type of the generated markup.
const MIMEType = "text/html"

// Extension is the file extension used for generated output.
const Extension = ".html"

// Page wraps a converted fragment in a minimal standalone HTML page. The
// title comes from the document metadata and is escaped; the fragment is
// written as-is.
func Page(fragment string, meta types.DocumentMetadata) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if meta.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(meta.Title))
	}
	if meta.Author != "" {
		fmt.Fprintf(&b, "<meta name=\"author\" content=\"%s\">\n", html.EscapeString(meta.Author))
	}
	b.WriteString("</head>\n<body>\n")
	if fragment != "" {
		b.WriteString(fragment)
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// PlainText returns the text of the document's top-level paragraphs joined
// by "\n", blank paragraphs included and tables skipped. It is the source
// side of the review diff.
func PlainText(doc *types.Document) string {
	if doc == nil {
		return ""
	}
	var parts []string
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case types.Paragraph:
			parts = append(parts, b.Text())
		case *types.Paragraph:
			parts = append(parts, b.Text())
		}
	}
	return strings.Join(parts, "\n")
}
