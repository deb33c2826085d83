package html

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/vincent-petithory/dataurl"
	"go.uber.org/zap"

	// additional decoders for image sizing
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Images are fully read to be decoded, refuse anything unreasonable.
const maxImageSize = 64 << 20

// maxImagePixels limits images which have to be fully decoded to learn
// their size, small compressed file could claim huge dimensions.
var maxImagePixels = 64 << 20

// ImageID returns relationship id of the image referenced by drawing
// (a:blip r:embed) or legacy VML picture (v:imagedata r:id) element.
func ImageID(el *etree.Element) (string, bool) {
	if el == nil {
		return "", false
	}
	switch el.Tag {
	case "drawing":
		return relAttr(findFirst(el, "blip"), "embed")
	case "pict":
		return relAttr(findFirst(el, "imagedata"), "id")
	}
	return "", false
}

// ResolveImage locates image with relationship id and determines its size.
// When size is not known in advance image bytes are decoded. Any failure
// results in no image.
func ResolveImage(id string, md *MetaData, log *zap.Logger) (ImageReference, bool) {
	if id == "" {
		return ImageReference{}, false
	}
	if log == nil {
		log = zap.NewNop()
	}

	location, ok := md.locator().Locate(id, md.Relationships)
	if !ok || location == "" {
		log.Debug("Unable to locate image, skipping", zap.String("id", id))
		return ImageReference{}, false
	}

	ref := ImageReference{ID: id, URL: location}
	if size, ok := md.ImageSizes[id]; ok {
		ref.Width, ref.Height = size.Width, size.Height
		return ref, true
	}

	size, err := decodeImageSize(md.opener(), location)
	if err != nil {
		log.Warn("Unable to determine image size, skipping", zap.String("id", id), zap.String("location", shortLocation(location)), zap.Error(err))
		return ImageReference{}, false
	}
	ref.Width, ref.Height = size.Width, size.Height
	return ref, true
}

func decodeImageSize(opener ResourceOpener, location string) (ImageSize, error) {
	rc, err := opener.Open(location)
	if err != nil {
		return ImageSize{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImageSize+1))
	if err != nil {
		return ImageSize{}, fmt.Errorf("unable to read image: %w", err)
	}
	if len(data) > maxImageSize {
		return ImageSize{}, fmt.Errorf("image is larger than %d bytes", maxImageSize)
	}
	if len(data) == 0 {
		return ImageSize{}, errors.New("image is empty")
	}

	if isSVG(data) {
		return svgSize(data)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageSize{}, fmt.Errorf("unable to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageSize{}, fmt.Errorf("image has no dimensions (%dx%d)", cfg.Width, cfg.Height)
	}
	if format != "jpeg" {
		return ImageSize{Width: cfg.Width, Height: cfg.Height}, nil
	}

	// EXIF orientation may swap jpeg sides, imaging applies it on decode
	if cfg.Width*cfg.Height > maxImagePixels {
		return ImageSize{}, fmt.Errorf("jpeg image %dx%d is too large to decode", cfg.Width, cfg.Height)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return ImageSize{}, fmt.Errorf("unable to decode image: %w", err)
	}
	b := img.Bounds()
	return ImageSize{Width: b.Dx(), Height: b.Dy()}, nil
}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 4096)]
	return bytes.Contains(head, []byte("<svg"))
}

func svgSize(data []byte) (ImageSize, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return ImageSize{}, fmt.Errorf("unable to parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return ImageSize{}, errors.New("svg has no usable viewBox")
	}
	return ImageSize{Width: int(math.Ceil(icon.ViewBox.W)), Height: int(math.Ceil(icon.ViewBox.H))}, nil
}

// localResources opens data URIs and local files.
type localResources struct{}

func (localResources) Open(location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "data:") {
		data, err := decodeDataURI(location)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return nil, fmt.Errorf("unsupported image location scheme %q", u.Scheme)
		}
		location = u.Path
	}
	return os.Open(filepath.FromSlash(location))
}

func decodeDataURI(uri string) ([]byte, error) {
	du, err := dataurl.DecodeString(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return du.Data, nil
}

// shortLocation keeps data URIs out of the logs.
func shortLocation(location string) string {
	if strings.HasPrefix(location, "data:") {
		if header, _, found := strings.Cut(location, ","); found {
			return header + ",..."
		}
	}
	return location
}

// appendImage renders <img> for drawing or picture element. Reports whether
// anything was rendered.
func (t *translator) appendImage(parent, el *etree.Element) bool {
	id, ok := ImageID(el)
	if !ok {
		t.log.Debug("Image without relationship id, skipping", zap.String("tag", el.FullTag()))
		return false
	}
	ref, ok := ResolveImage(id, t.md, t.log)
	if !ok {
		return false
	}
	img := parent.CreateElement("img")
	img.CreateAttr("src", ref.URL)
	img.CreateAttr("height", fmt.Sprint(ref.Height))
	img.CreateAttr("width", fmt.Sprint(ref.Width))
	if alt := imageAlt(el); alt != "" {
		img.CreateAttr("alt", alt)
	}
	return true
}

// imageAlt returns image description: wp:docPr/@descr for drawings and
// v:shape/@alt for pictures.
func imageAlt(el *etree.Element) string {
	if pr := findFirst(el, "docPr"); pr != nil {
		return strings.TrimSpace(pr.SelectAttrValue("descr", ""))
	}
	if shape := findFirst(el, "shape"); shape != nil {
		return strings.TrimSpace(shape.SelectAttrValue("alt", ""))
	}
	return ""
}
