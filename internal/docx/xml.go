package docx

import (
	"encoding/xml"
	"io"
	"strings"
)

// paragraphXML is a decoded <w:p>. Runs are collected in document order,
// including runs nested in hyperlinks, tracked insertions and smart tags.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// UnmarshalXML walks the paragraph children in order so that runs inside
// <w:hyperlink> keep their position relative to direct runs.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			default:
				if err := p.collectRuns(d, t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// runContainers are paragraph children whose <w:r> descendants are part
// of the paragraph text.
var runContainers = map[string]bool{
	"hyperlink": true,
	"ins":       true,
	"smartTag":  true,
	"fldSimple": true,
}

func (p *paragraphXML) collectRuns(d *xml.Decoder, start xml.StartElement) error {
	switch {
	case start.Name.Local == "r":
		var r runXML
		if err := d.DecodeElement(&r, &start); err != nil {
			return err
		}
		p.Runs = append(p.Runs, r)
		return nil
	case runContainers[start.Name.Local]:
		for {
			tok, err := d.Token()
			if err != nil {
				return err
			}
			switch t := tok.(type) {
			case xml.StartElement:
				if err := p.collectRuns(d, t); err != nil {
					return err
				}
			case xml.EndElement:
				return nil
			}
		}
	default:
		return d.Skip()
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML        `xml:"pStyle"`
	NumPr *numberingPropsXML `xml:"numPr"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valXML  `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// valXML is any element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// runXML is a decoded <w:r>. Text collects <w:t>, tabs and breaks in
// document order.
type runXML struct {
	Properties runPropsXML
	Text       string
}

// UnmarshalXML reads the run content in order; tabulations become "\t"
// and line or page breaks become "\n".
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "tab":
				text.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				text.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			case "noBreakHyphen":
				text.WriteByte('-')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = text.String()
			return nil
		}
	}
}

// runPropsXML represents run properties (<w:rPr>). Only direct bold
// formatting is modelled.
type runPropsXML struct {
	Bold *valXML `xml:"b"`
}

// bold reports whether the run is directly formatted bold. A <w:b/> with
// no value means on; "0", "false" and "off" mean off.
func (rp runPropsXML) bold() bool {
	if rp.Bold == nil {
		return false
	}
	switch strings.ToLower(rp.Bold.Val) {
	case "0", "false", "off":
		return false
	}
	return true
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>). Nested tables are not
// decoded.
type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Default string            `xml:"default,attr"` // "1" if default style
	Name    valXML            `xml:"name"`
	BasedOn valXML            `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl   string `xml:"ilvl,attr"`
	NumFmt valXML `xml:"numFmt"`
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string `xml:"numId,attr"`
	AbstractNumID valXML `xml:"abstractNumId"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}

// decodeXML unmarshals one archive part.
func decodeXML(r io.Reader, v any) error {
	return xml.NewDecoder(r).Decode(v)
}
