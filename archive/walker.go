// Package archive gives access to OOXML package parts stored in zip
// container.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// Parts larger than this are refused, document parts and media of normal
// documents are far below it.
const MaxPartSize = 256 << 20

// maxTotalSize limits all parts read by single ReadParts call.
var maxTotalSize int64 = 1 << 30

// WalkFunc is called for every file in archive visited by Walk. If an error
// is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk calls walkFn for every regular file in the archive whose name starts
// with prefix. Archives with entries which could escape extraction
// directory (absolute paths, "..") are rejected as a whole.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadParts loads content of every file under prefix keyed by its name in
// the archive. Every part and all of them together are size limited,
// declared sizes in zip directory are not trusted.
func ReadParts(archive, prefix string) (map[string][]byte, error) {
	parts := make(map[string][]byte)
	var total int64
	err := Walk(archive, prefix, func(_ string, file *zip.File) error {
		if file.UncompressedSize64 > MaxPartSize {
			return fmt.Errorf("zip entry %q is too large (%d bytes)", file.Name, file.UncompressedSize64)
		}
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("unable to open zip entry %q: %w", file.Name, err)
		}
		defer rc.Close()

		limit := min(int64(MaxPartSize), maxTotalSize-total)
		data, err := io.ReadAll(io.LimitReader(rc, limit+1))
		if err != nil {
			return fmt.Errorf("unable to read zip entry %q: %w", file.Name, err)
		}
		if int64(len(data)) > limit {
			if limit < MaxPartSize {
				return fmt.Errorf("zip entry %q: parts under %q exceed %d bytes in total", file.Name, prefix, maxTotalSize)
			}
			return fmt.Errorf("zip entry %q is too large", file.Name)
		}
		total += int64(len(data))
		parts[file.Name] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
