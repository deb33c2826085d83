package docx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"docx2html/common"
)

// MediaFile is image which has to be written next to the output when images
// are extracted.
type MediaFile struct {
	// Name is path relative to the output file.
	Name string
	Data []byte
}

// MediaStore decides how document images are referenced from the output
// and serves their bytes for size detection. It implements html.ImageLocator
// and html.ResourceOpener.
type MediaStore struct {
	pkg  *Package
	mode common.ImageMode
	dir  string
	log  *zap.Logger

	// location -> part name
	locations map[string]string
	// extracted files, output name -> part name
	used map[string]string
}

// NewMediaStore creates media store for package. dir is directory, relative
// to the output file, images are placed into in extract mode.
func (p *Package) NewMediaStore(mode common.ImageMode, dir string, log *zap.Logger) *MediaStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaStore{
		pkg:       p,
		mode:      mode,
		dir:       dir,
		log:       log,
		locations: make(map[string]string),
		used:      make(map[string]string),
	}
}

// Locate returns image location according to store mode. External images
// are always referenced by their target.
func (m *MediaStore) Locate(id string, rels map[string]string) (string, bool) {
	target, ok := rels[id]
	if !ok || target == "" {
		return "", false
	}
	if m.pkg.External[id] {
		return target, true
	}

	part := partName(target)
	data, ok := m.pkg.parts[part]
	if !ok {
		m.log.Warn("Image part is missing from package", zap.String("id", id), zap.String("part", part))
		return "", false
	}

	var location string
	switch m.mode {
	case common.ImageModeInline:
		location = "data:" + mimeType(part, data) + ";base64," + base64.StdEncoding.EncodeToString(data)
	case common.ImageModeReference:
		location = target
	case common.ImageModeExtract:
		location = m.extractName(part)
		m.used[location] = part
	default:
		m.log.Warn("Unsupported image mode", zap.Stringer("mode", m.mode))
		return "", false
	}
	m.locations[location] = part
	return location, true
}

// Open returns content of image previously returned by Locate.
func (m *MediaStore) Open(location string) (io.ReadCloser, error) {
	part, ok := m.locations[location]
	if !ok {
		return nil, fmt.Errorf("image location %q does not belong to package", shorten(location))
	}
	return io.NopCloser(bytes.NewReader(m.pkg.parts[part])), nil
}

// Used returns images referenced from the output in extract mode sorted by
// name.
func (m *MediaStore) Used() []MediaFile {
	names := make([]string, 0, len(m.used))
	for name := range m.used {
		names = append(names, name)
	}
	slices.Sort(names)

	files := make([]MediaFile, 0, len(names))
	for _, name := range names {
		files = append(files, MediaFile{Name: name, Data: m.pkg.parts[m.used[name]]})
	}
	return files
}

// extractName keeps media file name unless another part already took it.
func (m *MediaStore) extractName(part string) string {
	name := path.Join(m.dir, path.Base(part))
	for i := 1; ; i++ {
		owner, taken := m.used[name]
		if !taken || owner == part {
			return name
		}
		ext := path.Ext(part)
		name = path.Join(m.dir, fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path.Base(part), ext), i, ext))
	}
}

// partName converts relationship target of the main document to part name
// in the archive.
func partName(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join("word", target)
}

func mimeType(part string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	switch strings.ToLower(path.Ext(part)) {
	case ".svg":
		return "image/svg+xml"
	case ".emf":
		return "image/emf"
	case ".wmf":
		return "image/wmf"
	}
	if kind := filetype.GetType(strings.TrimPrefix(path.Ext(part), ".")); kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return "application/octet-stream"
}

func shorten(location string) string {
	if len(location) > 64 {
		return location[:64] + "..."
	}
	return location
}
