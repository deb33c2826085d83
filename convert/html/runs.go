package html

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

type runFormat struct {
	noBold bool
}

// appendRuns renders paragraph content (runs, hyperlinks and a few
// transparent containers) into parent.
func (t *translator) appendRuns(parent, p *etree.Element, rf runFormat) {
	for _, el := range p.ChildElements() {
		if el.NamespaceURI() != string(t.ns) {
			continue
		}
		switch el.Tag {
		case "r":
			t.appendRun(parent, el, rf)
		case "hyperlink":
			t.appendHyperlink(parent, el, rf)
		case "ins", "smartTag", "fldSimple", "customXml":
			t.appendRuns(parent, el, rf)
		case "pPr", "bookmarkStart", "bookmarkEnd", "proofErr", "del":
		default:
			t.log.Debug("Unexpected paragraph content, skipping", zap.String("tag", el.FullTag()))
		}
	}
}

func (t *translator) appendHyperlink(parent, link *etree.Element, rf runFormat) {
	var href string
	if id, ok := relAttr(link, "id"); ok {
		if target, ok := t.md.Relationships[id]; ok {
			href = target
		} else {
			t.log.Debug("Unresolved hyperlink relationship", zap.String("id", id))
		}
	} else if anchor, ok := t.ns.attr(link, "anchor"); ok && anchor != "" {
		href = "#" + anchor
	}

	target := parent
	if href != "" {
		target = parent.CreateElement("a")
		target.CreateAttr("href", href)
	}
	t.appendRuns(target, link, rf)
}

// appendRun renders single run, wrapping its content into <strong>, <em>
// and <u> (outermost first) according to run properties. Formatting
// containers are created even when run has no text.
func (t *translator) appendRun(parent, r *etree.Element, rf runFormat) {
	props := t.ns.child(r, "rPr")
	target := parent
	if !rf.noBold && t.ns.toggle(props, "b") {
		target = target.CreateElement("strong")
	}
	if t.ns.toggle(props, "i") {
		target = target.CreateElement("em")
	}
	if t.ns.toggle(props, "u") {
		target = target.CreateElement("u")
	}

	for _, el := range r.ChildElements() {
		if el.NamespaceURI() != string(t.ns) {
			continue
		}
		switch el.Tag {
		case "t":
			appendText(target, el.Text())
		case "tab":
			appendText(target, "\t")
		case "br", "cr":
			target.CreateElement("br")
		case "noBreakHyphen":
			appendText(target, "‑")
		case "drawing", "pict":
			t.appendImage(target, el)
		case "rPr", "lastRenderedPageBreak", "fldChar", "instrText":
		default:
			t.log.Debug("Unexpected run content, skipping", zap.String("tag", el.FullTag()))
		}
	}
}

// appendText adds text after the last child element of parent or to its
// leading text when there are no children yet.
func appendText(parent *etree.Element, text string) {
	if text == "" {
		return
	}
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + text)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + text)
}

// hasContent reports whether element got any text or children.
func hasContent(el *etree.Element) bool {
	for _, tok := range el.Child {
		switch v := tok.(type) {
		case *etree.Element:
			return true
		case *etree.CharData:
			if v.Data != "" {
				return true
			}
		}
	}
	return false
}

// hasImage reports whether paragraph contains drawing or picture anywhere
// in its runs.
func (t *translator) hasImage(p *etree.Element) bool {
	for _, el := range p.ChildElements() {
		if t.ns.is(el, "drawing") || t.ns.is(el, "pict") {
			return true
		}
		if t.hasImage(el) {
			return true
		}
	}
	return false
}
