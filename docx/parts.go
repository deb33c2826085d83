package docx

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"docx2html/convert/html"
)

// English Metric Units per pixel at 96 DPI.
const emuPerPixel = 9525

func isW(el *etree.Element, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == html.NamespaceW
}

func wChild(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if isW(c, local) {
			return c
		}
	}
	return nil
}

func wAttr(el *etree.Element, local string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == local && a.NamespaceURI() == html.NamespaceW {
			return a.Value
		}
	}
	return ""
}

func wVal(el *etree.Element, local string) string {
	return wAttr(wChild(el, local), "val")
}

func (p *Package) parseRelationships(doc *etree.Document, log *zap.Logger) {
	for _, rel := range doc.Root().ChildElements() {
		if rel.Tag != "Relationship" {
			continue
		}
		id := rel.SelectAttrValue("Id", "")
		if id == "" {
			log.Debug("Relationship without id, skipping")
			continue
		}
		p.Relationships[id] = rel.SelectAttrValue("Target", "")
		if rel.SelectAttrValue("TargetMode", "") == "External" {
			p.External[id] = true
		}
	}
}

// parseNumbering resolves every w:num through its abstract numbering to
// numbering format per level, honoring level overrides.
func (p *Package) parseNumbering(doc *etree.Document, log *zap.Logger) {
	abstract := make(map[string]map[int]string)
	var nums []*etree.Element

	for _, el := range doc.Root().ChildElements() {
		switch {
		case isW(el, "abstractNum"):
			abstract[wAttr(el, "abstractNumId")] = levelFormats(el)
		case isW(el, "num"):
			nums = append(nums, el)
		}
	}

	for _, num := range nums {
		numID := wAttr(num, "numId")
		if numID == "" {
			continue
		}
		levels := make(map[int]string)
		absID := wVal(num, "abstractNumId")
		base, ok := abstract[absID]
		if !ok {
			log.Debug("Numbering refers to unknown abstract numbering", zap.String("numId", numID), zap.String("abstractNumId", absID))
		}
		for ilvl, f := range base {
			levels[ilvl] = f
		}
		for _, ov := range num.ChildElements() {
			if !isW(ov, "lvlOverride") {
				continue
			}
			for ilvl, f := range levelFormats(ov) {
				levels[ilvl] = f
			}
		}
		p.Numbering[numID] = levels
	}
}

func levelFormats(el *etree.Element) map[int]string {
	levels := make(map[int]string)
	for _, lvl := range el.ChildElements() {
		if !isW(lvl, "lvl") {
			continue
		}
		ilvl, err := strconv.Atoi(wAttr(lvl, "ilvl"))
		if err != nil || ilvl < 0 {
			continue
		}
		if f := wVal(lvl, "numFmt"); f != "" {
			levels[ilvl] = f
		}
	}
	return levels
}

func (p *Package) parseStyles(doc *etree.Document, log *zap.Logger) {
	for _, el := range doc.Root().ChildElements() {
		switch {
		case isW(el, "style"):
			id := wAttr(el, "styleId")
			if id == "" {
				continue
			}
			st := html.Style{
				Header:  headerTag(wVal(el, "name"), wVal(wChild(el, "pPr"), "outlineLvl")),
				BasedOn: wVal(el, "basedOn"),
			}
			if sz := wVal(wChild(el, "rPr"), "sz"); sz != "" {
				st.FontSize = sz
				p.addFontSize(sz)
			}
			p.Styles[id] = st
		case isW(el, "docDefaults"):
			rPr := wChild(wChild(el, "rPrDefault"), "rPr")
			if lang := wVal(rPr, "lang"); lang != "" && p.Lang == "" {
				p.Lang = normalizeLang(lang, log)
			}
		case isW(el, "latentStyles"):
		default:
			log.Debug("Unexpected styles element", zap.String("tag", el.FullTag()))
		}
	}
}

// parseSettings picks document language when styles do not define one.
func (p *Package) parseSettings(doc *etree.Document, log *zap.Logger) {
	if p.Lang != "" {
		return
	}
	if lang := wAttr(wChild(doc.Root(), "themeFontLang"), "val"); lang != "" {
		p.Lang = normalizeLang(lang, log)
	}
}

// addFontSize registers w:sz value (half points) in font sizes map.
func (p *Package) addFontSize(sz string) {
	if _, ok := p.FontSizes[sz]; ok {
		return
	}
	n, err := strconv.ParseFloat(sz, 64)
	if err != nil || n <= 0 {
		p.FontSizes[sz] = ""
		return
	}
	p.FontSizes[sz] = strconv.FormatFloat(n/2, 'f', -1, 64) + "pt"
}

// headerTag maps built-in heading style names and outline levels to heading
// element names.
func headerTag(name, outline string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "title":
		return "h1"
	case strings.HasPrefix(name, "heading "):
		if n, err := strconv.Atoi(strings.TrimPrefix(name, "heading ")); err == nil && n >= 1 && n <= 6 {
			return "h" + strconv.Itoa(n)
		}
	}
	if n, err := strconv.Atoi(outline); err == nil && n >= 0 && n < 6 {
		return "h" + strconv.Itoa(n+1)
	}
	return ""
}

func normalizeLang(s string, log *zap.Logger) string {
	tag, err := language.Parse(s)
	if err != nil {
		log.Debug("Unable to parse document language", zap.String("lang", s), zap.Error(err))
		return ""
	}
	return tag.String()
}

// collectImageSizes records display size of every drawing from its extent.
// When the same image is used several times the first size wins.
func (p *Package) collectImageSizes() {
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			if isW(c, "drawing") {
				p.addDrawingSize(c)
				continue
			}
			walk(c)
		}
	}
	walk(p.Document.Root())
}

func (p *Package) addDrawingSize(drawing *etree.Element) {
	id, ok := html.ImageID(drawing)
	if !ok {
		return
	}
	if _, seen := p.ImageSizes[id]; seen {
		return
	}
	extent := findFirst(drawing, "extent")
	if extent == nil {
		return
	}
	cx, errX := strconv.ParseInt(extent.SelectAttrValue("cx", ""), 10, 64)
	cy, errY := strconv.ParseInt(extent.SelectAttrValue("cy", ""), 10, 64)
	if errX != nil || errY != nil || cx <= 0 || cy <= 0 {
		return
	}
	p.ImageSizes[id] = html.ImageSize{
		Width:  int(math.Round(float64(cx) / emuPerPixel)),
		Height: int(math.Round(float64(cy) / emuPerPixel)),
	}
}

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
