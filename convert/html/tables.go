package html

import (
	"strconv"

	"github.com/beevik/etree"
)

// appendTable renders w:tbl. Every row and cell is kept even when empty,
// cell content is translated recursively in cell context.
func (t *translator) appendTable(parent, tbl *etree.Element) {
	table := parent.CreateElement("table")
	for _, row := range t.ns.children(tbl, "tr") {
		tr := table.CreateElement("tr")
		for _, cell := range t.ns.children(row, "tc") {
			td := tr.CreateElement("td")
			if v, ok := t.ns.val(t.ns.child(cell, "tcPr"), "gridSpan"); ok {
				if span, err := strconv.Atoi(v); err == nil && span > 1 {
					td.CreateAttr("colspan", v)
				}
			}
			t.appendBlocks(td, cell.ChildElements(), inCell)
		}
	}
}
