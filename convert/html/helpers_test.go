package html

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const bodyTemplate = `<w:body` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	` xmlns:v="urn:schemas-microsoft-com:vml">%s</w:body>`

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func mustDocument(t *testing.T, body ...string) *etree.Document {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(fmt.Sprintf(bodyTemplate, strings.Join(body, ""))); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc
}

func runTag(text string, bold bool) string {
	var props string
	if bold {
		props = `<w:rPr><w:b/></w:rPr>`
	}
	return `<w:r>` + props + `<w:t>` + text + `</w:t></w:r>`
}

func pTag(text string) string {
	return `<w:p>` + runTag(text, false) + `</w:p>`
}

func liTag(text string, ilvl int, numID string, bold bool) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%s"/></w:numPr></w:pPr>%s</w:p>`,
		ilvl, numID, runTag(text, bold))
}

// tableTag builds table, every cell holds given raw content.
func tableTag(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl>`)
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc>` + cell + `</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	return b.String()
}

func drawingTag(rID string) string {
	return `<w:p><w:r><w:drawing><wp:inline><a:graphic><a:graphicData><pic:pic><pic:blipFill>` +
		`<a:blip r:embed="` + rID + `"/>` +
		`</pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`
}

func pictTag(rID string) string {
	var attr string
	if rID != "" {
		attr = ` r:id="` + rID + `"`
	}
	return `<w:p><w:r><w:pict><v:shape><v:imagedata` + attr + `/></v:shape></w:pict></w:r></w:p>`
}

func defaultMetaData() *MetaData {
	return &MetaData{
		Numbering: map[string]map[int]string{
			"1": {0: "decimal", 1: "decimal"},
			"2": {0: "none", 1: "none"},
		},
		Relationships: map[string]string{
			"rId3": "fontTable.xml",
			"rId2": "numbering.xml",
			"rId1": "styles.xml",
		},
		Styles: map[string]Style{
			"style0": {FontSize: "24"},
		},
		FontSizes:  map[string]string{"24": ""},
		ImageSizes: map[string]ImageSize{},
	}
}

var collapseRe = regexp.MustCompile(`(>?)\s*\n\s*(<?)`)

// collapseHTML removes insignificant whitespace: line breaks with
// surrounding blanks become single space unless one side touches a tag.
func collapseHTML(s string) string {
	s = collapseRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := collapseRe.FindStringSubmatch(m)
		before, after := sub[1], sub[2]
		if before == ">" || after == "<" {
			return before + after
		}
		return before + " " + after
	})
	return strings.TrimSpace(s)
}

func assertHTMLEqual(t *testing.T, got, want string) {
	t.Helper()

	if collapseHTML(got) != collapseHTML(want) {
		t.Fatalf("unexpected html\n got: %s\nwant: %s", collapseHTML(got), collapseHTML(want))
	}
}

func mustCreateHTML(t *testing.T, doc *etree.Document, md *MetaData) string {
	t.Helper()

	out, err := CreateHTML(doc, md, Options{}, testLogger(t))
	if err != nil {
		t.Fatalf("CreateHTML failed: %v", err)
	}
	return out
}

// bodyElements returns direct children of the document body.
func bodyElements(doc *etree.Document) []*etree.Element {
	return doc.Root().ChildElements()
}
