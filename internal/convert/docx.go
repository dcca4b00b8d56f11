// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"io"

	"github.com/pdiddy/docx2html/internal/docx"
	"github.com/pdiddy/docx2html/internal/htmlconv"
	"github.com/pdiddy/docx2html/pkg/types"
)

// DocxConverter loads DOCX packages and renders them with a configured
// htmlconv.Converter, optionally wrapped in a standalone page.
type DocxConverter struct {
	html       *htmlconv.Converter
	standalone bool
}

// NewDocxConverter validates the policies in cfg and returns a converter.
func NewDocxConverter(cfg types.ConversionConfig) (*DocxConverter, error) {
	hc, err := htmlconv.NewConverter(cfg)
	if err != nil {
		return nil, err
	}
	return &DocxConverter{html: hc, standalone: cfg.Standalone}, nil
}

// Convert loads the DOCX at path and returns its HTML.
func (d *DocxConverter) Convert(path string) (string, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return "", err
	}
	return d.Render(doc), nil
}

// ConvertReader loads a DOCX from a stream such as stdin.
func (d *DocxConverter) ConvertReader(r io.Reader, name string) (string, error) {
	doc, err := docx.Read(r, name)
	if err != nil {
		return "", err
	}
	return d.Render(doc), nil
}

// Render converts an already loaded document.
func (d *DocxConverter) Render(doc *types.Document) string {
	fragment := d.html.Convert(doc)
	if d.standalone {
		return htmlconv.Page(fragment, doc.Metadata)
	}
	return fragment
}
