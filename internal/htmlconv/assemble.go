// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmlconv turns a loaded document into an HTML fragment.
//
// Conversion walks the top-level blocks in source order, classifies each
// paragraph (heading, list item, FAQ question, plain), renders bold runs
// as <strong>, tracks the open list container and joins the emitted lines
// with newlines. Text is passed through without escaping. Every call owns
// its own state; nothing is shared between conversions.
package htmlconv

import (
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

// Converter renders documents using a fixed Classifier. The zero value uses
// the default policies.
type Converter struct {
	classifier Classifier
}

// NewConverter returns a converter configured from cfg's policies.
func NewConverter(cfg types.ConversionConfig) (*Converter, error) {
	c, err := NewClassifier(cfg.FAQPolicy, cfg.ListPolicy)
	if err != nil {
		return nil, err
	}
	return &Converter{classifier: c}, nil
}

// Classifier returns the classifier used by the converter.
func (c *Converter) Classifier() Classifier {
	return c.classifier
}

// DocxToHTML converts doc with the default policies. Every emitted tag
// line stands alone: list open and close tags, each <li>, and every table
// row and cell tag are separate lines joined by "\n".
func DocxToHTML(doc *types.Document) string {
	var c Converter
	return c.Convert(doc)
}

// Convert renders doc and returns the emitted lines joined by "\n". A nil
// or empty document yields "".
func (c *Converter) Convert(doc *types.Document) string {
	return strings.Join(c.Lines(doc), "\n")
}

// Lines renders doc and returns the emitted markup lines in order.
func (c *Converter) Lines(doc *types.Document) []string {
	if doc == nil {
		return nil
	}

	var (
		lines []string
		state listState
	)
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case types.Paragraph:
			lines = c.paragraph(lines, &state, b)
		case *types.Paragraph:
			lines = c.paragraph(lines, &state, *b)
		case types.Table:
			lines = append(state.flush(lines), tableLines(b)...)
		case *types.Table:
			lines = append(state.flush(lines), tableLines(*b)...)
		}
	}
	return state.flush(lines)
}

func (c *Converter) paragraph(lines []string, state *listState, p types.Paragraph) []string {
	text := strings.TrimSpace(p.Text())
	if text == "" {
		return lines
	}

	role := c.classifier.Classify(p)
	if role.Kind == RoleList {
		return state.item(lines, role.List, RenderRuns(p))
	}

	lines = state.flush(lines)
	switch role.Kind {
	case RoleHeading1:
		return append(lines, "<h1>"+RenderRuns(p)+"</h1>")
	case RoleHeading2:
		return append(lines, "<h2>"+RenderRuns(p)+"</h2>")
	case RoleFAQ:
		// The whole question is bold even when only part of it was.
		return append(lines, "<p><strong>"+text+"</strong></p>")
	default:
		return append(lines, "<p>"+RenderRuns(p)+"</p>")
	}
}
