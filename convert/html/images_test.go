package html

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type memResources map[string][]byte

func (m memResources) Open(location string) (io.ReadCloser, error) {
	data, ok := m[location]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func imageMetaData() *MetaData {
	md := defaultMetaData()
	md.Relationships = map[string]string{
		"rId0": "media/image1.jpeg",
		"rId1": "media/image2.jpeg",
	}
	md.ImageSizes = map[string]ImageSize{
		"rId0": {Width: 4, Height: 4},
		"rId1": {Width: 4, Height: 4},
	}
	return md
}

func TestImages(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"), pictTag("rId1"))
	assertHTMLEqual(t, mustCreateHTML(t, doc, imageMetaData()), `
		<html>
			<p>
				<img src="media/image1.jpeg" height="4" width="4"/>
			</p>
			<p>
				<img src="media/image2.jpeg" height="4" width="4"/>
			</p>
		</html>
	`)
}

func TestImageID(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"), pictTag("rId1"), pictTag(""))

	var ids []string
	for _, p := range bodyElements(doc) {
		el := findFirst(p, "drawing")
		if el == nil {
			el = findFirst(p, "pict")
		}
		id, ok := ImageID(el)
		if !ok {
			id = "-"
		}
		ids = append(ids, id)
	}
	want := []string{"rId0", "rId1", "-"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
	if _, ok := ImageID(nil); ok {
		t.Fatalf("nil element must have no image id")
	}
}

func TestImageMissingSizeIsDecoded(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"), pictTag("rId1"))
	md := imageMetaData()
	delete(md.ImageSizes, "rId1")
	md.Resources = memResources{"media/image2.jpeg": pngBytes(t, 6, 6)}

	assertHTMLEqual(t, mustCreateHTML(t, doc, md), `
		<html>
			<p>
				<img src="media/image1.jpeg" height="4" width="4"/>
			</p>
			<p>
				<img src="media/image2.jpeg" height="6" width="6"/>
			</p>
		</html>
	`)
}

func TestImageUndecodableIsDropped(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"), pictTag("rId1"))
	md := imageMetaData()
	delete(md.ImageSizes, "rId1")
	md.Resources = memResources{"media/image2.jpeg": []byte("definitely not an image")}

	assertHTMLEqual(t, mustCreateHTML(t, doc, md), `
		<html>
			<p>
				<img src="media/image1.jpeg" height="4" width="4"/>
			</p>
		</html>
	`)
}

func TestPictWithoutImageID(t *testing.T) {
	doc := mustDocument(t, pictTag(""))
	assertHTMLEqual(t, mustCreateHTML(t, doc, defaultMetaData()), `<html></html>`)
}

func TestImageLocatorDecides(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"))
	md := imageMetaData()
	md.Images = ImageLocatorFunc(func(id string, rels map[string]string) (string, bool) {
		if id == "rId0" {
			return "https://cdn.example.com/" + filepath.Base(rels[id]), true
		}
		return "", false
	})
	assertHTMLEqual(t, mustCreateHTML(t, doc, md),
		`<html><p><img src="https://cdn.example.com/image1.jpeg" height="4" width="4"/></p></html>`)

	md.Images = ImageLocatorFunc(func(string, map[string]string) (string, bool) { return "", false })
	assertHTMLEqual(t, mustCreateHTML(t, doc, md), `<html></html>`)
}

func TestResolveImage(t *testing.T) {
	log := testLogger(t)
	md := imageMetaData()

	if _, ok := ResolveImage("", md, log); ok {
		t.Fatalf("empty id must not resolve")
	}
	if _, ok := ResolveImage("rId9", md, log); ok {
		t.Fatalf("unknown id must not resolve")
	}
	ref, ok := ResolveImage("rId0", md, log)
	if !ok {
		t.Fatalf("expected image to resolve")
	}
	if want := (ImageReference{ID: "rId0", URL: "media/image1.jpeg", Width: 4, Height: 4}); ref != want {
		t.Fatalf("got %+v, want %+v", ref, want)
	}
}

func TestDecodeImageSizeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, pngBytes(t, 3, 5), 0644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	size, err := decodeImageSize(localResources{}, path)
	if err != nil {
		t.Fatalf("decodeImageSize: %v", err)
	}
	if size != (ImageSize{Width: 3, Height: 5}) {
		t.Fatalf("unexpected size %+v", size)
	}
}

// pngHeader returns PNG signature and IHDR chunk only, no pixel data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 0, 17)
	ihdr = append(ihdr, "IHDR"...)
	ihdr = binary.BigEndian.AppendUint32(ihdr, w)
	ihdr = binary.BigEndian.AppendUint32(ihdr, h)
	ihdr = append(ihdr, 8, 0, 0, 0, 0) // 8 bit grayscale

	data := []byte("\x89PNG\r\n\x1a\n")
	data = binary.BigEndian.AppendUint32(data, 13)
	data = append(data, ihdr...)
	return binary.BigEndian.AppendUint32(data, crc32.ChecksumIEEE(ihdr))
}

func TestDecodeImageSizeLargeDimensions(t *testing.T) {
	doc := mustDocument(t, drawingTag("rId0"))
	md := imageMetaData()
	delete(md.ImageSizes, "rId0")
	md.Resources = memResources{"media/image1.jpeg": pngHeader(30000, 20000)}

	assertHTMLEqual(t, mustCreateHTML(t, doc, md),
		`<html><p><img src="media/image1.jpeg" height="20000" width="30000"/></p></html>`)
}

func TestDecodeImageSizeJPEGLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 6)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	res := memResources{"a.jpg": buf.Bytes()}

	size, err := decodeImageSize(res, "a.jpg")
	if err != nil {
		t.Fatalf("decodeImageSize: %v", err)
	}
	if size != (ImageSize{Width: 8, Height: 6}) {
		t.Fatalf("unexpected size %+v", size)
	}

	saved := maxImagePixels
	t.Cleanup(func() { maxImagePixels = saved })
	maxImagePixels = 47
	if _, err := decodeImageSize(res, "a.jpg"); err == nil {
		t.Fatalf("expected jpeg above pixel limit to be refused")
	}
}

func TestDecodeImageSizeSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><rect width="20" height="10"/></svg>`)
	size, err := decodeImageSize(memResources{"a.svg": svg}, "a.svg")
	if err != nil {
		t.Fatalf("decodeImageSize: %v", err)
	}
	if size != (ImageSize{Width: 20, Height: 10}) {
		t.Fatalf("unexpected size %+v", size)
	}
}

func TestDataURI(t *testing.T) {
	data, err := decodeDataURI("data:text/plain;base64,aGVsbG8=")
	if err != nil || string(data) != "hello" {
		t.Fatalf("got %q, %v", data, err)
	}
	data, err = decodeDataURI("data:,a%20b")
	if err != nil || string(data) != "a b" {
		t.Fatalf("got %q, %v", data, err)
	}
	if _, err := decodeDataURI("data:nothing"); err == nil {
		t.Fatalf("expected error for malformed URI")
	}
	if _, err := decodeDataURI("data:image/png;base64,%%%"); err == nil {
		t.Fatalf("expected error for broken base64 payload")
	}
	uri := "data:image/png;name=a.png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 7, 2))
	size, err := decodeImageSize(localResources{}, uri)
	if err != nil {
		t.Fatalf("decodeImageSize: %v", err)
	}
	if size != (ImageSize{Width: 7, Height: 2}) {
		t.Fatalf("unexpected size %+v", size)
	}
	if _, err := (localResources{}).Open("https://example.com/a.png"); err == nil {
		t.Fatalf("expected remote locations to be refused")
	}
	if _, err := (localResources{}).Open(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}
