package convert

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"docx2html/common"
	"docx2html/convert/markdown"
	"docx2html/convert/text"
)

// Converter turns generated HTML into requested output format.
type Converter interface {
	Convert(html string) (string, error)
}

type passThrough struct{}

func (passThrough) Convert(html string) (string, error) { return html, nil }

var converters = map[common.OutputFmt]func() Converter{
	common.OutputFmtHtml:     func() Converter { return passThrough{} },
	common.OutputFmtMarkdown: func() Converter { return markdown.New() },
	common.OutputFmtText:     func() Converter { return text.New() },
}

func converterFor(format common.OutputFmt) (Converter, error) {
	if newConverter, ok := converters[format]; ok {
		return newConverter(), nil
	}
	return nil, fmt.Errorf("%s: %w", format, common.ErrConverterMissing)
}

// sanitizePolicy keeps everything translator produces while dropping
// unsafe link targets coming from document relationships.
func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowElements("html")
	p.AllowAttrs("data-list-type").OnElements("ol")
	return p
}
