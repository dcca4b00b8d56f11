// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source file.
type ConversionStatus string

const (
	ConversionDone      ConversionStatus = "converted"
	ConversionUnchanged ConversionStatus = "unchanged"
	ConversionSkipped   ConversionStatus = "skipped"
	ConversionFailed    ConversionStatus = "failed"
)

// SourceFile identifies a DOCX file queued for conversion.
type SourceFile struct {
	// ID is a slug derived from the file name without extension.
	ID string `json:"id" yaml:"id"`

	// Path is the local filesystem path to the DOCX file.
	Path string `json:"path" yaml:"path"`

	// ModTime is the file modification time at the moment it was queued.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// MarkupStats counts the block-level elements of an emitted document.
type MarkupStats struct {
	Headings   int `json:"headings" yaml:"headings"`
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
	FAQs       int `json:"faqs" yaml:"faqs"`
	Lists      int `json:"lists" yaml:"lists"`
	ListItems  int `json:"list_items" yaml:"list_items"`
	Tables     int `json:"tables" yaml:"tables"`
}

// Blocks returns the number of top-level elements counted.
func (s MarkupStats) Blocks() int {
	return s.Headings + s.Paragraphs + s.Lists + s.Tables
}
