// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/docx2html/pkg/types"
)

func TestRenderRuns(t *testing.T) {
	tests := []struct {
		name string
		runs []types.Run
		want string
	}{
		{"no runs", nil, ""},
		{"plain", []types.Run{plain("hello")}, "hello"},
		{"bold", []types.Run{bold("hi")}, "<strong>hi</strong>"},
		{"adjacent bold not merged", []types.Run{bold("A"), bold("A")}, "<strong>A</strong><strong>A</strong>"},
		{"adjacent plain kept", []types.Run{plain("a"), plain("b")}, "ab"},
		{"whitespace bold kept", []types.Run{bold(" ")}, "<strong> </strong>"},
		{"mixed", []types.Run{plain("x "), bold("y"), plain(" z")}, "x <strong>y</strong> z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderRuns(types.Paragraph{Runs: tt.runs}))
		})
	}
}

func TestTableToHTML(t *testing.T) {
	cell := func(ps ...types.Paragraph) types.Cell { return types.Cell{Paragraphs: ps} }

	table := types.Table{Rows: []types.Row{
		{Cells: []types.Cell{cell(para("", bold("X"))), cell(para("", plain("Y")))}},
		{Cells: []types.Cell{
			cell(para("Heading 1", plain("not")), para("", plain(" a heading"))),
			cell(),
		}},
	}}

	want := "<table border='1' cellpadding='8' cellspacing='0'>\n" +
		"<tr>\n" +
		"<td><strong>X</strong></td>\n" +
		"<td>Y</td>\n" +
		"</tr>\n" +
		"<tr>\n" +
		"<td>not a heading</td>\n" +
		"<td></td>\n" +
		"</tr>\n" +
		"</table>"
	assert.Equal(t, want, TableToHTML(table))
}

func TestListState(t *testing.T) {
	var s listState
	assert.Equal(t, types.ListNone, s.current)

	lines := s.item(nil, types.ListUnordered, "a")
	assert.Equal(t, types.ListUnordered, s.current)
	lines = s.item(lines, types.ListUnordered, "b")
	lines = s.item(lines, types.ListOrdered, "c")
	lines = s.flush(lines)
	lines = s.flush(lines)

	assert.Equal(t, types.ListNone, s.current)
	assert.Equal(t, []string{"<ul>", "<li>a</li>", "<li>b</li>", "</ul>", "<ol>", "<li>c</li>", "</ol>"}, lines)
}

func TestPlainText(t *testing.T) {
	d := doc(
		para("Heading 1", plain("Title")),
		types.Table{Rows: []types.Row{{Cells: []types.Cell{{Paragraphs: []types.Paragraph{para("", plain("cell"))}}}}}},
		para(""),
		para("", plain("a"), bold("b")),
	)
	assert.Equal(t, "Title\n\nab", PlainText(d))
	assert.Equal(t, "", PlainText(nil))
}

func TestPage(t *testing.T) {
	out := Page("<p>x</p>", types.DocumentMetadata{Title: "Q&A <draft>", Author: "Ann"})
	assert.Contains(t, out, "<title>Q&amp;A &lt;draft&gt;</title>")
	assert.Contains(t, out, `<meta name="author" content="Ann">`)
	assert.Contains(t, out, "<body>\n<p>x</p>\n</body>")

	empty := Page("", types.DocumentMetadata{})
	assert.NotContains(t, empty, "<title>")
	assert.Contains(t, empty, "<body>\n</body>")
}
