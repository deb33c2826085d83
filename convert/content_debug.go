package convert

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"docx2html/utils/debug"
)

// String returns readable dump of document metadata. It exists solely for
// manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}
	md := c.MetaData
	tw := debug.NewTreeWriter()

	tw.Line(0, "Document %q ref[%s]", c.SrcName, c.RefID)
	tw.TextBlock(1, "Lang", md.Lang)

	tw.Line(0, "Numbering: %d", len(md.Numbering))
	numIDs := slices.Collect(maps.Keys(md.Numbering))
	sort.Sort(natural.StringSlice(numIDs))
	for _, id := range numIDs {
		levels := md.Numbering[id]
		tw.Line(1, "NumID[%q] levels[%d]", id, len(levels))
		for _, ilvl := range slices.Sorted(maps.Keys(levels)) {
			tw.Line(2, "Level[%d] format[%q]", ilvl, levels[ilvl])
		}
	}

	tw.Line(0, "Styles: %d", len(md.Styles))
	styleIDs := slices.Collect(maps.Keys(md.Styles))
	sort.Sort(natural.StringSlice(styleIDs))
	for _, id := range styleIDs {
		s := md.Styles[id]
		tw.Line(1, "Style[%q] header[%q] font_size[%q] based_on[%q]", id, s.Header, s.FontSize, s.BasedOn)
	}

	tw.Map(0, "Font sizes", md.FontSizes)
	tw.Map(0, "Relationships", md.Relationships)

	tw.Line(0, "Image sizes: %d", len(md.ImageSizes))
	imageIDs := slices.Collect(maps.Keys(md.ImageSizes))
	sort.Sort(natural.StringSlice(imageIDs))
	for _, id := range imageIDs {
		size := md.ImageSizes[id]
		tw.Line(1, "Image[%q] %dx%d", id, size.Width, size.Height)
	}
	return tw.String()
}
