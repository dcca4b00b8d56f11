// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx loads DOCX (Office Open XML) packages into the document
// model consumed by the converter.
//
// Only what the converter needs is read: paragraphs and tables of the main
// document body in source order, run text with direct bold formatting,
// paragraph style names, list numbering and the core properties. Headers,
// footers, footnotes, images and nested tables are ignored.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/docx2html/pkg/types"
)

const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partCore         = "docProps/core.xml"
)

var (
	// ErrUnsupportedFormat is returned when the input is not a ZIP archive.
	ErrUnsupportedFormat = errors.New("unsupported format: not a ZIP archive")

	// ErrNotDocx is returned when a ZIP archive lacks the parts of a
	// word-processing document.
	ErrNotDocx = errors.New("not a word-processing document")
)

// LoadError reports a failure to turn an input into a Document. No partial
// document is returned alongside it.
type LoadError struct {
	Path string // input path, or "-" for streams
	Op   string // open, validate, parse
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Open reads the DOCX file at path.
func Open(path string) (*types.Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: classifyZipError(err)}
	}
	defer zr.Close()
	return load(&zr.Reader, path)
}

// Load reads a DOCX package from r. name is used in error messages only.
func Load(r io.ReaderAt, size int64, name string) (*types.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &LoadError{Path: name, Op: "open", Err: classifyZipError(err)}
	}
	return load(zr, name)
}

// Read buffers a DOCX package from a stream (e.g. stdin) and loads it.
func Read(r io.Reader, name string) (*types.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: name, Op: "read", Err: err}
	}
	return Load(bytes.NewReader(data), int64(len(data)), name)
}

func classifyZipError(err error) error {
	if errors.Is(err, zip.ErrFormat) {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return err
}

// archive gives named access to the parts of an opened package.
type archive struct {
	files map[string]*zip.File
}

func newArchive(zr *zip.Reader) *archive {
	a := &archive{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		a.files[f.Name] = f
	}
	return a
}

// validate checks that required DOCX parts exist.
func (a *archive) validate() error {
	for _, name := range []string{partContentTypes, partDocument} {
		if _, ok := a.files[name]; !ok {
			return fmt.Errorf("%w: missing required part %s", ErrNotDocx, name)
		}
	}
	return nil
}

// decode unmarshals an optional part into v. It reports false when the
// part is absent.
func (a *archive) decode(name string, v any) (bool, error) {
	f, ok := a.files[name]
	if !ok {
		return false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return false, err
	}
	defer rc.Close()
	if err := decodeXML(rc, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

func load(zr *zip.Reader, path string) (*types.Document, error) {
	a := newArchive(zr)
	if err := a.validate(); err != nil {
		return nil, &LoadError{Path: path, Op: "validate", Err: err}
	}

	// Styles and numbering are optional; a malformed optional part is
	// treated as absent.
	var styles *stylesXML
	var sx stylesXML
	if ok, err := a.decode(partStyles, &sx); err == nil && ok {
		styles = &sx
	}
	var numbering *numberingXML
	var nx numberingXML
	if ok, err := a.decode(partNumbering, &nx); err == nil && ok {
		numbering = &nx
	}

	doc := &types.Document{}
	var core corePropertiesXML
	if ok, err := a.decode(partCore, &core); err == nil && ok {
		doc.Metadata = types.DocumentMetadata{
			Title:   core.Title,
			Author:  core.Creator,
			Subject: core.Subject,
		}
	}

	rc, err := a.files[partDocument].Open()
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer rc.Close()

	w := newBodyWalker(rc, newStyleResolver(styles), newNumberingResolver(numbering))
	blocks, err := w.All()
	if err != nil {
		return nil, &LoadError{Path: path, Op: "parse", Err: fmt.Errorf("%s: %w", partDocument, err)}
	}
	doc.Blocks = blocks
	return doc, nil
}
