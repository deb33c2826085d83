package html

import (
	"github.com/beevik/etree"
)

// ResolveStyle computes effective style for styleID. Font size is inherited
// from the nearest ancestor in based-on chain which sets it and is mapped
// through fontSizes when mapping exists. Header is never inherited. Chain
// cycles end the walk at the first repeated style.
func ResolveStyle(styleID string, styles map[string]Style, fontSizes map[string]string) ResolvedStyle {
	st, ok := styles[styleID]
	if !ok {
		return ResolvedStyle{}
	}

	size := st.FontSize
	visited := map[string]struct{}{styleID: {}}
	for cur := st; size == "" && cur.BasedOn != ""; {
		if _, seen := visited[cur.BasedOn]; seen {
			break
		}
		visited[cur.BasedOn] = struct{}{}
		parent, ok := styles[cur.BasedOn]
		if !ok {
			break
		}
		size, cur = parent.FontSize, parent
	}
	if mapped, ok := fontSizes[size]; ok {
		size = mapped
	}
	return ResolvedStyle{Header: st.Header, FontSize: size}
}

// paragraphStyle returns resolved style of paragraph's w:pStyle.
func (t *translator) paragraphStyle(p *etree.Element) ResolvedStyle {
	id, ok := t.ns.val(t.ns.child(p, "pPr"), "pStyle")
	if !ok {
		return ResolvedStyle{}
	}
	return ResolveStyle(id, t.md.Styles, t.md.FontSizes)
}
