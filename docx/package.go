// Package docx loads WordprocessingML package: main document tree and
// everything translator needs from other parts (relationships, numbering,
// styles, media).
package docx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"docx2html/archive"
	"docx2html/common"
	"docx2html/convert/html"
)

const (
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partNumbering    = "word/numbering.xml"
	partStyles       = "word/styles.xml"
	partSettings     = "word/settings.xml"
)

// Package is loaded document.
type Package struct {
	Name     string
	Document *etree.Document

	// relationship id -> target as written in the part
	Relationships map[string]string
	// relationship ids with external targets
	External map[string]bool
	// numId -> ilvl -> numFmt
	Numbering  map[string]map[int]string
	Styles     map[string]html.Style
	FontSizes  map[string]string
	ImageSizes map[string]html.ImageSize
	Lang       string

	parts map[string][]byte
}

type options struct {
	normalize bool
	workDir   string
}

// Option changes how package is opened.
type Option func(*options)

// WithNormalize rewrites archive (see archive.Normalize) into workDir before
// reading it. Empty workDir means system temporary directory.
func WithNormalize(workDir string) Option {
	return func(o *options) {
		o.normalize = true
		o.workDir = workDir
	}
}

// Open reads and parses document package.
func Open(path string, log *zap.Logger, opts ...Option) (*Package, error) {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), common.ErrInvalidFileExtension)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	src := path
	if o.normalize {
		f, err := os.CreateTemp(o.workDir, "normalized-*.docx")
		if err != nil {
			return nil, fmt.Errorf("unable to create temporary file: %w", err)
		}
		f.Close()
		defer os.Remove(f.Name())

		if err := archive.Normalize(path, f.Name()); err != nil {
			return nil, err
		}
		src = f.Name()
	}

	parts, err := archive.ReadParts(src, "")
	if err != nil {
		return nil, fmt.Errorf("unable to read document package: %w", err)
	}
	return load(filepath.Base(path), parts, log)
}

// Load parses document package from already extracted parts keyed by their
// names in archive.
func Load(name string, parts map[string][]byte, log *zap.Logger) (*Package, error) {
	return load(name, parts, log)
}

func load(name string, parts map[string][]byte, log *zap.Logger) (*Package, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, ok := parts[partDocument]
	if !ok {
		return nil, fmt.Errorf("%s: package has no %s: %w", name, partDocument, common.ErrConversionFailed)
	}
	doc, err := readXML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to parse %s: %w", name, partDocument, err)
	}

	pkg := &Package{
		Name:          name,
		Document:      doc,
		Relationships: make(map[string]string),
		External:      make(map[string]bool),
		Numbering:     make(map[string]map[int]string),
		Styles:        make(map[string]html.Style),
		FontSizes:     make(map[string]string),
		ImageSizes:    make(map[string]html.ImageSize),
		parts:         parts,
	}

	// Missing or broken supplementary parts only degrade output
	for _, p := range []struct {
		name  string
		parse func(*etree.Document, *zap.Logger)
	}{
		{partDocumentRels, pkg.parseRelationships},
		{partNumbering, pkg.parseNumbering},
		{partStyles, pkg.parseStyles},
		{partSettings, pkg.parseSettings},
	} {
		data, ok := parts[p.name]
		if !ok {
			log.Debug("Package part is missing", zap.String("part", p.name))
			continue
		}
		part, err := readXML(data)
		if err != nil {
			log.Warn("Unable to parse package part, ignoring", zap.String("part", p.name), zap.Error(err))
			continue
		}
		p.parse(part, log)
	}
	pkg.collectImageSizes()

	log.Debug("Package loaded",
		zap.String("name", name),
		zap.Int("parts", len(parts)),
		zap.Int("relationships", len(pkg.Relationships)),
		zap.Int("numberings", len(pkg.Numbering)),
		zap.Int("styles", len(pkg.Styles)),
		zap.Int("images", len(pkg.ImageSizes)),
		zap.String("lang", pkg.Lang))
	return pkg, nil
}

// IsDocx reports whether content looks like word processing document
// container.
func IsDocx(head []byte) bool {
	return filetype.IsType(head, matchers.TypeDocx)
}

// MetaData returns translation metadata with images served by store.
func (p *Package) MetaData(store *MediaStore) *html.MetaData {
	md := &html.MetaData{
		Numbering:     p.Numbering,
		Relationships: p.Relationships,
		Styles:        p.Styles,
		FontSizes:     p.FontSizes,
		ImageSizes:    p.ImageSizes,
		Lang:          p.Lang,
	}
	if store != nil {
		md.Images = store
		md.Resources = store
	}
	return md
}

func readXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("no root element: %w", common.ErrConversionFailed)
	}
	return doc, nil
}
