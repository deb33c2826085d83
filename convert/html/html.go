package html

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"docx2html/common"
)

// Options controls translation and rendering.
type Options struct {
	// PrettyPrint indents resulting HTML.
	PrettyPrint bool
	// PlainRomanLists keeps top level upper roman numbered paragraphs as
	// list items instead of turning them into headings.
	PlainRomanLists bool
}

type translator struct {
	ns   wml
	md   *MetaData
	opts Options
	log  *zap.Logger
}

// newTranslator uses namespace of el as WordprocessingML namespace.
func newTranslator(el *etree.Element, md *MetaData, opts Options, log *zap.Logger) *translator {
	if md == nil {
		md = &MetaData{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	var ns string
	if el != nil {
		ns = el.NamespaceURI()
	}
	return &translator{ns: wml(ns), md: md, opts: opts, log: log}
}

// CreateHTML translates document and serializes result.
func CreateHTML(doc *etree.Document, md *MetaData, opts Options, log *zap.Logger) (string, error) {
	out, err := Translate(doc, md, opts, log)
	if err != nil {
		return "", err
	}
	return Render(out, opts.PrettyPrint)
}

// Translate builds HTML tree for WordprocessingML document. Document root is
// expected to declare "w" namespace prefix and have w:body child.
func Translate(doc *etree.Document, md *MetaData, opts Options, log *zap.Logger) (*etree.Document, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element: %w", common.ErrConversionFailed)
	}
	root := doc.Root()
	uri, err := ResolveNamespace(root, "w")
	if err != nil {
		// some producers bind main namespace to a different prefix
		if root.NamespaceURI() != NamespaceW {
			return nil, err
		}
		uri = NamespaceW
	}

	t := newTranslator(nil, md, opts, log)
	t.ns = wml(uri)

	body := root
	if !t.ns.is(root, "body") {
		if body = t.ns.child(root, "body"); body == nil {
			return nil, fmt.Errorf("document has no body: %w", common.ErrConversionFailed)
		}
	}

	out := etree.NewDocument()
	html := out.CreateElement("html")
	if t.md.Lang != "" {
		html.CreateAttr("lang", t.md.Lang)
	}
	t.appendBlocks(html, body.ChildElements(), inBody)
	return out, nil
}

// Render serializes HTML tree. Elements which may not be self-closing in
// HTML are always written with end tag.
func Render(out *etree.Document, pretty bool) (string, error) {
	if root := out.Root(); root != nil {
		if pretty {
			indent(root, 0)
		}
		closeElements(root)
	}
	out.WriteSettings.CanonicalText = true
	out.WriteSettings.CanonicalAttrVal = true
	s, err := out.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to serialize html: %w", err)
	}
	return s, nil
}

const indentUnit = "  "

var blockElements = map[string]bool{
	"p": true, "ol": true, "ul": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// indent puts every child of a pure block container on its own line.
// Elements holding character data or inline children are left as is
// together with their subtree, whitespace there is part of the text.
func indent(el *etree.Element, depth int) {
	children := el.ChildElements()
	if len(children) == 0 || len(children) != len(el.Child) {
		return
	}
	for _, c := range children {
		if !blockElements[c.Tag] {
			return
		}
	}
	for len(el.Child) > 0 {
		el.RemoveChildAt(0)
	}
	pad := "\n" + strings.Repeat(indentUnit, depth+1)
	for _, c := range children {
		el.AddChild(etree.NewText(pad))
		el.AddChild(c)
		indent(c, depth+1)
	}
	el.AddChild(etree.NewText("\n" + strings.Repeat(indentUnit, depth)))
}

var voidElements = map[string]bool{"br": true, "img": true, "hr": true}

func closeElements(el *etree.Element) {
	if len(el.Child) == 0 && !voidElements[el.Tag] {
		el.AddChild(etree.NewText(""))
	}
	for _, c := range el.ChildElements() {
		closeElements(c)
	}
}

type blockContext int

const (
	inBody blockContext = iota
	inCell
)

// appendBlocks dispatches block level nodes. Lists consume several siblings
// at once.
func (t *translator) appendBlocks(parent *etree.Element, nodes []*etree.Element, bc blockContext) {
	for i := 0; i < len(nodes); i++ {
		el := nodes[i]
		kind, style := t.classify(el)
		switch kind {
		case nodeTable:
			t.appendTable(parent, el)
		case nodeListItem:
			if n := t.appendList(parent, el); n > 1 {
				i += n - 1
			}
		case nodeRomanHeading, nodeStyleHeading:
			h := parent.CreateElement(style.Header)
			t.appendRuns(h, el, runFormat{noBold: true})
		case nodeImageParagraph, nodeParagraph:
			t.appendParagraph(parent, el, kind, bc)
		case nodeUnknown:
			t.log.Debug("Skipping unsupported element", zap.String("tag", el.FullTag()))
		}
	}
}

// appendParagraph renders paragraph as <p> in body context and inline
// (separated by <br/>) in cell context. Paragraphs with images which
// produced nothing are dropped.
func (t *translator) appendParagraph(parent, el *etree.Element, kind nodeKind, bc blockContext) {
	p := etree.NewElement("p")
	t.appendRuns(p, el, runFormat{})

	if !hasContent(p) && (kind == nodeImageParagraph || bc == inCell) {
		return
	}
	if bc == inBody {
		parent.AddChild(p)
		return
	}
	if hasContent(parent) {
		parent.CreateElement("br")
	}
	for len(p.Child) > 0 {
		parent.AddChild(p.Child[0])
	}
}
