// Package text renders generated HTML as plain text: paragraphs separated
// by blank lines, numbered and bulleted list items indented by level and
// table rows with tab separated cells.
package text

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var spaces = regexp.MustCompile(`[ \r\n]+`)

// Converter has no state, it exists so all output formats look the same.
type Converter struct{}

func New() *Converter {
	return &Converter{}
}

// Convert returns plain text for html document.
func (*Converter) Convert(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("unable to parse html: %w", err)
	}

	w := &writer{}
	w.blocks(doc)
	if len(w.out) == 0 {
		return "", nil
	}
	return strings.Join(w.out, "\n\n") + "\n", nil
}

type writer struct {
	out []string
}

func (w *writer) add(block string) {
	if strings.TrimSpace(block) != "" {
		w.out = append(w.out, block)
	}
}

func (w *writer) blocks(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			w.add(clean(c.Data))
		case c.Type != html.ElementNode:
		case isHeading(c.DataAtom), c.DataAtom == atom.P:
			w.add(inline(c))
		case c.DataAtom == atom.Ol, c.DataAtom == atom.Ul:
			var lines []string
			list(c, 0, &lines)
			w.add(strings.Join(lines, "\n"))
		case c.DataAtom == atom.Table:
			var lines []string
			table(c, "", &lines)
			w.add(strings.Join(lines, "\n"))
		case c.DataAtom == atom.Script, c.DataAtom == atom.Style, c.DataAtom == atom.Head:
		default:
			w.blocks(c)
		}
	}
}

// list writes items of a single list. Nested lists and tables follow the
// item text with deeper indentation.
func list(n *html.Node, level int, lines *[]string) {
	kind := attr(n, "data-list-type")
	if kind == "" && n.DataAtom == atom.Ul {
		kind = "disc"
	}
	indent := strings.Repeat("  ", level)

	num := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		num++
		mark := marker(kind, num)
		prefix := indent
		if mark != "" {
			prefix += mark + " "
		}
		cont := strings.Repeat(" ", len(prefix))

		var text strings.Builder
		flush := func() {
			s := strings.TrimSpace(text.String())
			text.Reset()
			if s == "" {
				return
			}
			for _, line := range strings.Split(s, "\n") {
				*lines = append(*lines, prefix+strings.TrimSpace(line))
				prefix = cont
			}
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.ElementNode && (c.DataAtom == atom.Ol || c.DataAtom == atom.Ul):
				flush()
				list(c, level+1, lines)
			case c.Type == html.ElementNode && c.DataAtom == atom.Table:
				flush()
				table(c, indent+"  ", lines)
			default:
				inlineTo(&text, c)
			}
		}
		flush()
	}
}

func table(n *html.Node, indent string, lines *[]string) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom != atom.Tr {
				walk(c)
				continue
			}
			var cells []string
			for td := c.FirstChild; td != nil; td = td.NextSibling {
				if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
					cells = append(cells, strings.Join(strings.Fields(inline(td)), " "))
				}
			}
			*lines = append(*lines, indent+strings.Join(cells, "\t"))
		}
	}
	walk(n)
}

func inline(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineTo(&sb, c)
	}
	lines := strings.Split(sb.String(), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func inlineTo(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(clean(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Br:
		sb.WriteByte('\n')
		return
	case atom.Img:
		if alt := attr(n, "alt"); alt != "" {
			fmt.Fprintf(sb, "[image: %s]", alt)
		}
		return
	case atom.Ol, atom.Ul, atom.Table:
		// block content inside table cells is flattened
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(strings.Fields(inline(n)), " "))
		sb.WriteByte(' ')
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineTo(sb, c)
	}
	if n.DataAtom == atom.A {
		if href := attr(n, "href"); strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			fmt.Fprintf(sb, " (%s)", href)
		}
	}
}

func clean(s string) string {
	return spaces.ReplaceAllString(s, " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func marker(kind string, n int) string {
	switch kind {
	case "none":
		return ""
	case "disc", "bullet":
		return "-"
	case "lower-alpha":
		return alpha(n, 'a') + "."
	case "upper-alpha":
		return alpha(n, 'A') + "."
	case "lower-roman":
		return strings.ToLower(roman(n)) + "."
	case "upper-roman":
		return roman(n) + "."
	default:
		return fmt.Sprintf("%d.", n)
	}
}

// alpha follows spreadsheet column naming: a, b, ..., z, aa, ab.
func alpha(n int, base byte) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{base + byte(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func roman(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}
