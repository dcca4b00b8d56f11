package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx2html/internal/docx"
	"github.com/pdiddy/docx2html/internal/ledger"
	"github.com/pdiddy/docx2html/pkg/types"
)

const faqDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Guide</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>1. What is it?</w:t></w:r></w:p>
<w:p><w:r><w:t>A converter.</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>fast</w:t></w:r></w:p>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>small</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>x</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:sectPr/>
</w:body>
</w:document>`

const faqStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
</w:styles>`

const faqNumbering = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`

const faqCore = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Guide &amp; FAQ</dc:title></cp:coreProperties>`

const wantFAQHTML = "<h1>Guide</h1>\n" +
	"<p><strong>1. What is it?</strong></p>\n" +
	"<p>A converter.</p>\n" +
	"<ul>\n<li>fast</li>\n<li>small</li>\n</ul>\n" +
	"<table border='1' cellpadding='8' cellspacing='0'>\n<tr>\n<td>x</td>\n</tr>\n</table>"

func faqDOCX(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   faqDocument,
		"word/styles.xml":     faqStyles,
		"word/numbering.xml":  faqNumbering,
		"docProps/core.xml":   faqCore,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocxConverter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.docx")
	require.NoError(t, os.WriteFile(path, faqDOCX(t), 0o644))

	c, err := NewDocxConverter(types.ConversionConfig{})
	require.NoError(t, err)

	got, err := c.Convert(path)
	require.NoError(t, err)
	assert.Equal(t, wantFAQHTML, got)

	fromStream, err := c.ConvertReader(bytes.NewReader(faqDOCX(t)), "-")
	require.NoError(t, err)
	assert.Equal(t, got, fromStream)
}

func TestDocxConverterStandalone(t *testing.T) {
	c, err := NewDocxConverter(types.ConversionConfig{Standalone: true})
	require.NoError(t, err)

	got, err := c.ConvertReader(bytes.NewReader(faqDOCX(t)), "-")
	require.NoError(t, err)
	assert.Contains(t, got, "<title>Guide &amp; FAQ</title>")
	assert.Contains(t, got, wantFAQHTML)
}

func TestDocxConverterRejectsUnknownPolicy(t *testing.T) {
	_, err := NewDocxConverter(types.ConversionConfig{FAQPolicy: "italic"})
	assert.Error(t, err)
}

func TestDocxConverterLoadError(t *testing.T) {
	c, err := NewDocxConverter(types.ConversionConfig{})
	require.NoError(t, err)

	_, err = c.ConvertReader(bytes.NewReader([]byte("plain text")), "notes.docx")
	var loadErr *docx.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, docx.ErrUnsupportedFormat))
}

func TestConvertBatchEndToEnd(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "guide.docx"), faqDOCX(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "broken.docx"), []byte("nope"), 0o644))

	store, err := ledger.Open(types.LedgerConfig{Dir: filepath.Join(t.TempDir(), "ledger")})
	require.NoError(t, err)
	defer store.Close()

	c, err := NewDocxConverter(types.ConversionConfig{})
	require.NoError(t, err)

	sources, err := FindSources(srcDir)
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "html")
	opts := Options{OutputDir: outDir, Ledger: store}
	ctx := context.Background()

	var log bytes.Buffer
	result, err := ConvertBatch(ctx, c, sources, opts, &log)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Converted: 1, Failed: 1}, result)

	data, err := os.ReadFile(filepath.Join(outDir, "guide.html"))
	require.NoError(t, err)
	assert.Equal(t, wantFAQHTML, string(data))

	done, err := store.List(ctx, ledger.Filter{Status: types.ConversionDone})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, types.MarkupStats{Headings: 1, Paragraphs: 2, FAQs: 1, Lists: 1, ListItems: 2, Tables: 1}, done[0].Stats)

	// Second run: the converted file is unchanged, the broken one is retried.
	log.Reset()
	result, err = ConvertBatch(ctx, c, sources, opts, &log)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Skipped: 1, Failed: 1}, result)
	assert.Contains(t, log.String(), "skipped: guide (unchanged)")
}
