// Enums shared by the converter packages and the command line live here so
// that convert/html does not have to import configuration.
package common

// Specification of requested output type.
// ENUM(html, markdown, text)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtMarkdown:
		return ".md"
	case OutputFmtText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of how document images are referenced from the output.
// ENUM(inline, reference, extract)
type ImageMode int
