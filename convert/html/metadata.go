// Package html translates WordprocessingML document tree into HTML tree.
//
// Input is a parsed document.xml (see docx package for loading), all
// additional information document carries in other parts is supplied in
// MetaData. Translation is pure: it does not modify input tree or MetaData
// and keeps no state between calls.
package html

import (
	"io"
)

// Style is a single entry of styles part which is relevant for translation.
type Style struct {
	// Header is heading element name ("h1"..."h6") paragraphs of this style
	// are rendered with, empty for regular styles.
	Header   string
	FontSize string
	BasedOn  string
}

// ResolvedStyle is effective style after based-on chain has been applied.
type ResolvedStyle struct {
	Header   string
	FontSize string
}

// ImageSize is image size in pixels.
type ImageSize struct {
	Width  int
	Height int
}

// ImageReference is fully resolved image ready to be rendered.
type ImageReference struct {
	ID     string
	URL    string
	Width  int
	Height int
}

// ImageLocator maps relationship id of an image to location (URL) which
// will be used in output.
type ImageLocator interface {
	Locate(id string, rels map[string]string) (string, bool)
}

// ImageLocatorFunc is an adapter to allow use of ordinary functions as
// ImageLocator.
type ImageLocatorFunc func(id string, rels map[string]string) (string, bool)

func (f ImageLocatorFunc) Locate(id string, rels map[string]string) (string, bool) {
	return f(id, rels)
}

// RelationshipLocator uses relationship target as image location.
var RelationshipLocator = ImageLocatorFunc(func(id string, rels map[string]string) (string, bool) {
	target, ok := rels[id]
	return target, ok && target != ""
})

// ResourceOpener provides access to bytes behind image location when image
// size is not known in advance.
type ResourceOpener interface {
	Open(location string) (io.ReadCloser, error)
}

// MetaData is everything translator needs to know about document besides
// its main tree. It is never modified during translation.
type MetaData struct {
	// numId -> ilvl -> numFmt
	Numbering map[string]map[int]string
	// relationship id -> target
	Relationships map[string]string
	Styles        map[string]Style
	FontSizes     map[string]string
	// Images defaults to RelationshipLocator when nil.
	Images     ImageLocator
	ImageSizes map[string]ImageSize
	// Resources defaults to local file system (and data URIs) when nil.
	Resources ResourceOpener
	// Lang is BCP 47 language tag, emitted on html element when not empty.
	Lang string
}

func (md *MetaData) locator() ImageLocator {
	if md.Images == nil {
		return RelationshipLocator
	}
	return md.Images
}

func (md *MetaData) opener() ResourceOpener {
	if md.Resources == nil {
		return localResources{}
	}
	return md.Resources
}
