// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx2html/pkg/types"
)

func TestInspect(t *testing.T) {
	fragment := "<h1>Title</h1>\n" +
		"<p><strong>1. What is it?</strong></p>\n" +
		"<p>An answer with <strong>emphasis</strong>.</p>\n" +
		"<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n" +
		"<h2>Details</h2>\n" +
		"<table border='1' cellpadding='8' cellspacing='0'>\n<tr>\n<td>x</td>\n</tr>\n</table>"

	stats, err := Inspect(fragment)
	require.NoError(t, err)
	assert.Equal(t, types.MarkupStats{
		Headings:   2,
		Paragraphs: 2,
		FAQs:       1,
		Lists:      1,
		ListItems:  2,
		Tables:     1,
	}, stats)
	assert.Equal(t, 6, stats.Blocks())
}

func TestInspectEmpty(t *testing.T) {
	stats, err := Inspect("")
	require.NoError(t, err)
	assert.Equal(t, types.MarkupStats{}, stats)
}

func TestInspectTwoStrongsIsNotFAQ(t *testing.T) {
	stats, err := Inspect("<p><strong>a</strong><strong>b</strong></p>")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Paragraphs)
	assert.Zero(t, stats.FAQs)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		wantErr  bool
	}{
		{name: "empty", fragment: ""},
		{name: "list", fragment: "<ol>\n<li>one</li>\n</ol>"},
		{name: "untracked inline tags pass through", fragment: "<p>a <em>b</em> <br> c</p>"},
		{name: "unclosed list", fragment: "<ul>\n<li>one</li>", wantErr: true},
		{name: "mismatched close", fragment: "<ul>\n<li>one</li>\n</ol>", wantErr: true},
		{name: "stray close", fragment: "</p>", wantErr: true},
		{name: "orphan item", fragment: "<li>one</li>", wantErr: true},
		{name: "item in paragraph", fragment: "<p><li>one</li></p>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.fragment)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnbalanced)
				return
			}
			assert.NoError(t, err)
		})
	}
}
