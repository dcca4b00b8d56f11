// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ListKind distinguishes bulleted from numbered list paragraphs.
type ListKind int

const (
	ListNone ListKind = iota
	ListUnordered
	ListOrdered
)

// String returns the markup tag name for the list kind ("ul" or "ol").
func (k ListKind) String() string {
	switch k {
	case ListUnordered:
		return "ul"
	case ListOrdered:
		return "ol"
	default:
		return "none"
	}
}

// Document is a loaded word-processing document: its top-level blocks in
// source order plus the package metadata. A Document is never mutated
// after the loader returns it.
type Document struct {
	Blocks   []Block          `json:"blocks" yaml:"blocks"`
	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// DocumentMetadata holds the core properties of the source package
// (docProps/core.xml). All fields are optional.
type DocumentMetadata struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// Block is a top-level document unit. The only implementations are
// Paragraph and Table.
type Block interface {
	isBlock()
}

// Run is a contiguous inline text span sharing one bold attribute.
type Run struct {
	Text string `json:"text" yaml:"text"`
	Bold bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// ListInfo is present on paragraphs that carry a numbering reference.
type ListInfo struct {
	// Kind is the list kind resolved from the numbering definitions.
	Kind ListKind `json:"kind" yaml:"kind"`

	// NumID is the numbering instance id (w:numId), empty when the
	// paragraph has a numPr without one.
	NumID string `json:"num_id,omitempty" yaml:"num_id,omitempty"`

	// Level is the 0-based indentation level (w:ilvl). Not rendered.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`
}

// Paragraph is an ordered sequence of runs with a style name and optional
// list metadata.
type Paragraph struct {
	Runs  []Run     `json:"runs" yaml:"runs"`
	Style string    `json:"style,omitempty" yaml:"style,omitempty"`
	List  *ListInfo `json:"list,omitempty" yaml:"list,omitempty"`
}

func (Paragraph) isBlock() {}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	switch len(p.Runs) {
	case 0:
		return ""
	case 1:
		return p.Runs[0].Text
	}
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	b := make([]byte, 0, n)
	for _, r := range p.Runs {
		b = append(b, r.Text...)
	}
	return string(b)
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

func (Table) isBlock() {}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Cell holds paragraphs only; nested tables are not modelled.
type Cell struct {
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
}
