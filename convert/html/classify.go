package html

import (
	"github.com/beevik/etree"
)

// IsTopLevelUpperRoman reports whether paragraph is numbered with upper
// roman numerals at the top level. Such paragraphs are used by authors as
// section headings rather than list items.
func IsTopLevelUpperRoman(p *etree.Element, md *MetaData) bool {
	return newTranslator(p, md, Options{}, nil).isTopLevelUpperRoman(p)
}

func (t *translator) isTopLevelUpperRoman(p *etree.Element) bool {
	numID, ilvl, ok := t.ns.numbering(p)
	if !ok || ilvl != 0 {
		return false
	}
	return t.md.Numbering[numID][0] == "upperRoman"
}
