package html

import (
	"iter"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// ListItems returns sequence of sibling nodes forming single list starting
// with start: list items with the same numId and level not above start's
// level, and tables directly following them. Sequence is empty when start is
// not a list item.
func ListItems(start *etree.Element, md *MetaData) iter.Seq[*etree.Element] {
	return newTranslator(start, md, Options{}, nil).listItems(start)
}

// IsLastListItem reports whether el is list item with numID which is not
// followed by another item of the same list. Tables between items do not
// break the list.
func IsLastListItem(el *etree.Element, md *MetaData, numID string) bool {
	return newTranslator(el, md, Options{}, nil).isLastListItem(el, numID)
}

func (t *translator) listItems(start *etree.Element) iter.Seq[*etree.Element] {
	return func(yield func(*etree.Element) bool) {
		numID, base, ok := t.ns.numbering(start)
		if !ok || !yield(start) {
			return
		}
		for el := nextSibling(start); el != nil; el = nextSibling(el) {
			if !t.ns.is(el, "tbl") {
				id, ilvl, ok := t.ns.numbering(el)
				if !ok || id != numID || ilvl < base {
					return
				}
			}
			if !yield(el) {
				return
			}
		}
	}
}

func (t *translator) isLastListItem(el *etree.Element, numID string) bool {
	if id, _, ok := t.ns.numbering(el); !ok || id != numID {
		return false
	}
	next := nextSibling(el)
	for next != nil && t.ns.is(next, "tbl") {
		next = nextSibling(next)
	}
	id, _, ok := t.ns.numbering(next)
	return !ok || id != numID
}

type listLevel struct {
	ol, li *etree.Element
	ilvl   int
}

// appendList renders list starting with start and returns number of
// siblings consumed. Deeper levels are nested into the current <li>,
// shallower ones return to the enclosing list. Tables are attached to the
// current <li> after a line break.
func (t *translator) appendList(parent, start *etree.Element) int {
	numID, base, _ := t.ns.numbering(start)
	stack := []listLevel{{ol: t.createList(parent, numID, base), ilvl: base}}

	consumed := 0
	for el := range t.listItems(start) {
		consumed++
		if t.ns.is(el, "tbl") {
			li := stack[len(stack)-1].li
			li.CreateElement("br")
			t.appendTable(li, el)
			continue
		}

		id, ilvl, _ := t.ns.numbering(el)
		for len(stack) > 1 && ilvl < stack[len(stack)-1].ilvl {
			stack = stack[:len(stack)-1]
		}
		if top := stack[len(stack)-1]; ilvl > top.ilvl && top.li != nil {
			stack = append(stack, listLevel{ol: t.createList(top.li, id, ilvl), ilvl: ilvl})
		}
		top := &stack[len(stack)-1]
		top.li = top.ol.CreateElement("li")
		t.appendRuns(top.li, el, runFormat{})
	}
	t.log.Debug("List translated", zap.String("numId", numID), zap.Int("base", base), zap.Int("nodes", consumed))
	return consumed
}

func (t *translator) createList(parent *etree.Element, numID string, ilvl int) *etree.Element {
	ol := parent.CreateElement("ol")
	ol.CreateAttr("data-list-type", listType(t.md.Numbering[numID][ilvl]))
	return ol
}

// listType maps numbering format to CSS list-style-type name.
func listType(numFmt string) string {
	switch numFmt {
	case "", "decimal":
		return "decimal"
	case "upperRoman":
		return "upper-roman"
	case "lowerRoman":
		return "lower-roman"
	case "upperLetter":
		return "upper-alpha"
	case "lowerLetter":
		return "lower-alpha"
	case "bullet":
		return "disc"
	default:
		return numFmt
	}
}
