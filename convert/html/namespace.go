package html

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"docx2html/common"
)

const (
	// WordprocessingML main namespace, bound to "w" prefix in every document
	// produced by word processors.
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// Office document relationships namespace, bound to "r" prefix.
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	// Relationships namespace of strict OOXML documents.
	NamespaceRStrict = "http://purl.oclc.org/ooxml/officeDocument/relationships"
)

// ResolveNamespace returns URI bound to prefix on element or any of its
// ancestors. Empty prefix looks for default namespace declaration.
func ResolveNamespace(root *etree.Element, prefix string) (string, error) {
	for el := root; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if (prefix == "" && a.Space == "" && a.Key == "xmlns") || (a.Space == "xmlns" && a.Key == prefix) {
				return a.Value, nil
			}
		}
	}
	if root == nil {
		return "", fmt.Errorf("unable to resolve namespace prefix %q, no element: %w", prefix, common.ErrConversionFailed)
	}
	return "", fmt.Errorf("namespace prefix %q is not declared on <%s>: %w", prefix, root.FullTag(), common.ErrConversionFailed)
}

// wml matches elements and attributes of a single WordprocessingML
// namespace by local name.
type wml string

func (ns wml) is(el *etree.Element, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == string(ns)
}

// child returns first direct child element with given local name.
func (ns wml) child(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if ns.is(c, local) {
			return c
		}
	}
	return nil
}

func (ns wml) children(el *etree.Element, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var res []*etree.Element
	for _, c := range el.ChildElements() {
		if ns.is(c, local) {
			res = append(res, c)
		}
	}
	return res
}

func (ns wml) attr(el *etree.Element, local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for i := range el.Attr {
		if a := &el.Attr[i]; a.Key == local && a.NamespaceURI() == string(ns) {
			return a.Value, true
		}
	}
	return "", false
}

// val returns w:val of the first child with given local name.
func (ns wml) val(el *etree.Element, local string) (string, bool) {
	return ns.attr(ns.child(el, local), "val")
}

// toggle reports whether on/off property (w:b, w:i, w:u ...) is set on
// properties element. Missing w:val means on.
func (ns wml) toggle(props *etree.Element, local string) bool {
	prop := ns.child(props, local)
	if prop == nil {
		return false
	}
	v, ok := ns.attr(prop, "val")
	if !ok {
		return true
	}
	switch v {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

// numbering returns numbering properties of a paragraph. numId "0" removes
// numbering in OOXML and is treated as absent.
func (ns wml) numbering(p *etree.Element) (numID string, ilvl int, ok bool) {
	if !ns.is(p, "p") {
		return "", 0, false
	}
	numPr := ns.child(ns.child(p, "pPr"), "numPr")
	if numPr == nil {
		return "", 0, false
	}
	numID, _ = ns.val(numPr, "numId")
	if numID == "" || numID == "0" {
		return "", 0, false
	}
	if v, found := ns.val(numPr, "ilvl"); found {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ilvl = n
		}
	}
	return numID, ilvl, true
}

// relAttr returns relationship attribute (r:id, r:embed) value. Attribute
// may be in any of known relationship namespaces or in the one document
// binds to "r" prefix.
func relAttr(el *etree.Element, local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != local || a.Space == "" {
			continue
		}
		switch uri := a.NamespaceURI(); uri {
		case NamespaceR, NamespaceRStrict, "":
			return a.Value, a.Value != ""
		default:
			if bound, err := ResolveNamespace(el, "r"); err == nil && bound == uri {
				return a.Value, a.Value != ""
			}
		}
	}
	return "", false
}

// findFirst does depth first search for descendant with given local name
// regardless of its namespace.
func findFirst(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == local {
			return c
		}
		if found := findFirst(c, local); found != nil {
			return found
		}
	}
	return nil
}

// nextSibling returns element following el in its parent, skipping
// character data and other non element tokens.
func nextSibling(el *etree.Element) *etree.Element {
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for i := el.Index() + 1; i < len(parent.Child); i++ {
		if next, ok := parent.Child[i].(*etree.Element); ok {
			return next
		}
	}
	return nil
}
