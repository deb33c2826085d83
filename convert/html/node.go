package html

import (
	"github.com/beevik/etree"
)

// nodeKind is closed set of block level nodes translator knows about.
type nodeKind int

const (
	nodeUnknown nodeKind = iota
	nodeTable
	nodeListItem
	nodeRomanHeading
	nodeStyleHeading
	nodeImageParagraph
	nodeParagraph
)

func (k nodeKind) String() string {
	switch k {
	case nodeTable:
		return "table"
	case nodeListItem:
		return "list item"
	case nodeRomanHeading:
		return "roman heading"
	case nodeStyleHeading:
		return "style heading"
	case nodeImageParagraph:
		return "image paragraph"
	case nodeParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// classify determines block kind of body (or cell) child. Order of checks
// matters: numbered paragraphs are list items unless they are top level
// upper roman, which become headings even if their style says otherwise.
func (t *translator) classify(el *etree.Element) (nodeKind, ResolvedStyle) {
	switch {
	case t.ns.is(el, "tbl"):
		return nodeTable, ResolvedStyle{}
	case !t.ns.is(el, "p"):
		return nodeUnknown, ResolvedStyle{}
	}

	if _, _, ok := t.ns.numbering(el); ok {
		if !t.opts.PlainRomanLists && t.isTopLevelUpperRoman(el) {
			return nodeRomanHeading, ResolvedStyle{Header: "h2"}
		}
		return nodeListItem, ResolvedStyle{}
	}
	if style := t.paragraphStyle(el); style.Header != "" {
		return nodeStyleHeading, style
	}
	if t.hasImage(el) {
		return nodeImageParagraph, ResolvedStyle{}
	}
	return nodeParagraph, ResolvedStyle{}
}
