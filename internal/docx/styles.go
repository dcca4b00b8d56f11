package docx

import (
	"strconv"
	"strings"

	"github.com/pdiddy/docx2html/pkg/types"
)

// builtinNames maps the lower-case names Word stores for built-in styles to
// the names shown in the UI ("heading 1" -> "Heading 1").
var builtinNames = map[string]string{
	"caption": "Caption",
	"footer":  "Footer",
	"header":  "Header",
	"title":   "Title",
	"normal":  "Normal",
}

func init() {
	for i := 1; i <= 9; i++ {
		n := strconv.Itoa(i)
		builtinNames["heading "+n] = "Heading " + n
	}
}

// styleResolver maps paragraph style ids to UI names and style-level
// numbering.
type styleResolver struct {
	names        map[string]string
	numbering    map[string]*numberingPropsXML
	basedOn      map[string]string
	defaultStyle string
}

func newStyleResolver(styles *stylesXML) *styleResolver {
	sr := &styleResolver{
		names:     make(map[string]string),
		numbering: make(map[string]*numberingPropsXML),
		basedOn:   make(map[string]string),
	}
	if styles == nil {
		return sr
	}
	for _, s := range styles.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		sr.names[s.StyleID] = uiName(s.Name.Val)
		if s.PPr.NumPr != nil {
			sr.numbering[s.StyleID] = s.PPr.NumPr
		}
		if s.BasedOn.Val != "" {
			sr.basedOn[s.StyleID] = s.BasedOn.Val
		}
		if s.Default == "1" {
			sr.defaultStyle = s.StyleID
		}
	}
	return sr
}

func uiName(name string) string {
	if ui, ok := builtinNames[strings.ToLower(name)]; ok {
		return ui
	}
	return name
}

// name returns the UI name of the style with the given id. An empty id
// resolves to the document's default paragraph style. Ids missing from
// styles.xml fall back to the built-in heading ids ("Heading2" ->
// "Heading 2") and otherwise to the id itself.
func (sr *styleResolver) name(styleID string) string {
	if styleID == "" {
		styleID = sr.defaultStyle
		if styleID == "" {
			return ""
		}
	}
	if n, ok := sr.names[styleID]; ok {
		return n
	}
	if rest, ok := strings.CutPrefix(styleID, "Heading"); ok {
		if level, err := strconv.Atoi(rest); err == nil && level >= 1 && level <= 9 {
			return "Heading " + rest
		}
	}
	return styleID
}

// numPr returns the numbering properties inherited from the style chain,
// or nil.
func (sr *styleResolver) numPr(styleID string) *numberingPropsXML {
	if styleID == "" {
		styleID = sr.defaultStyle
	}
	seen := make(map[string]bool)
	for styleID != "" && !seen[styleID] {
		seen[styleID] = true
		if np, ok := sr.numbering[styleID]; ok {
			return np
		}
		styleID = sr.basedOn[styleID]
	}
	return nil
}

// numberingResolver resolves numbering definitions from numbering.xml.
type numberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

func newNumberingResolver(numbering *numberingXML) *numberingResolver {
	nr := &numberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}
	if numbering == nil {
		return nr
	}
	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}
	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}
	return nr
}

// kind returns the list kind for a numbering instance and level. Bullet
// formats are unordered, every other format is ordered. ListNone means the
// definition could not be found.
func (nr *numberingResolver) kind(numID string, level int) types.ListKind {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return types.ListNone
	}
	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return types.ListNone
	}
	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "":
			return types.ListNone
		case "bullet", "none":
			return types.ListUnordered
		default:
			return types.ListOrdered
		}
	}
	return types.ListNone
}
