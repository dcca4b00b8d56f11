package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/docx2html/pkg/types"
)

// bodyWalker yields the children of <w:body> one block at a time, in the
// order they appear in document.xml. Paragraphs and tables are siblings in
// a single ordered list; decoding them into separate slices would lose
// their relative position.
type bodyWalker struct {
	dec       *xml.Decoder
	styles    *styleResolver
	numbering *numberingResolver
	inBody    bool
	done      bool
}

func newBodyWalker(r io.Reader, styles *styleResolver, numbering *numberingResolver) *bodyWalker {
	return &bodyWalker{
		dec:       xml.NewDecoder(r),
		styles:    styles,
		numbering: numbering,
	}
}

// Next returns the next paragraph or table. It returns io.EOF after the
// closing </w:body>. Other body children (section properties, content
// controls, bookmarks) are skipped.
func (w *bodyWalker) Next() (types.Block, error) {
	if w.done {
		return nil, io.EOF
	}
	if !w.inBody {
		if err := w.seekBody(); err != nil {
			return nil, err
		}
	}

	for {
		tok, err := w.dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("document body not terminated: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := w.dec.DecodeElement(&p, &t); err != nil {
					return nil, fmt.Errorf("decoding paragraph: %w", err)
				}
				return w.paragraph(p), nil
			case "tbl":
				var tbl tableXML
				if err := w.dec.DecodeElement(&tbl, &t); err != nil {
					return nil, fmt.Errorf("decoding table: %w", err)
				}
				return w.table(tbl), nil
			default:
				if err := w.dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			// The only end tag seen at this depth is </w:body>.
			w.done = true
			return nil, io.EOF
		}
	}
}

// All drains the walker and returns every block.
func (w *bodyWalker) All() ([]types.Block, error) {
	var blocks []types.Block
	for {
		b, err := w.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

func (w *bodyWalker) seekBody() error {
	for {
		tok, err := w.dec.Token()
		if err == io.EOF {
			return fmt.Errorf("no <w:body> element: %w", ErrNotDocx)
		}
		if err != nil {
			return err
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "body" {
			w.inBody = true
			return nil
		}
	}
}

func (w *bodyWalker) paragraph(p paragraphXML) types.Paragraph {
	out := types.Paragraph{
		Style: w.styles.name(p.Properties.Style.Val),
	}
	if len(p.Runs) > 0 {
		out.Runs = make([]types.Run, len(p.Runs))
		for i, r := range p.Runs {
			out.Runs[i] = types.Run{Text: r.Text, Bold: r.Properties.bold()}
		}
	}

	numPr := p.Properties.NumPr
	if numPr == nil {
		numPr = w.styles.numPr(p.Properties.Style.Val)
	}
	out.List = w.listInfo(numPr)
	return out
}

// listInfo converts numbering properties to list metadata. A numId of "0"
// removes numbering and yields nil.
func (w *bodyWalker) listInfo(np *numberingPropsXML) *types.ListInfo {
	if np == nil {
		return nil
	}
	li := &types.ListInfo{}
	if np.NumID != nil {
		if np.NumID.Val == "0" {
			return nil
		}
		li.NumID = np.NumID.Val
	}
	if lvl, err := strconv.Atoi(np.ILvl.Val); err == nil && lvl >= 0 {
		li.Level = lvl
	}
	if li.NumID != "" {
		li.Kind = w.numbering.kind(li.NumID, li.Level)
	}
	return li
}

func (w *bodyWalker) table(t tableXML) types.Table {
	out := types.Table{Rows: make([]types.Row, len(t.Rows))}
	for i, row := range t.Rows {
		cells := make([]types.Cell, len(row.Cells))
		for j, cell := range row.Cells {
			paras := make([]types.Paragraph, len(cell.Paragraphs))
			for k, p := range cell.Paragraphs {
				paras[k] = w.paragraph(p)
			}
			cells[j] = types.Cell{Paragraphs: paras}
		}
		out.Rows[i] = types.Row{Cells: cells}
	}
	return out
}
