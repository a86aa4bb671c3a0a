// Package source opens the seekable streams the row parser reads from.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// CompressedExt marks LZ4 frame files.
const CompressedExt = ".lz4"

// File is an opened input. Plain files are read directly; compressed files
// are decompressed into memory so the parser can seek them.
type File struct {
	io.ReadSeeker
	closer     io.Closer
	compressed bool
}

// Open opens path for parsing.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), CompressedExt) {
		return &File{ReadSeeker: f, closer: f}, nil
	}
	defer f.Close()

	data, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return &File{ReadSeeker: bytes.NewReader(data), compressed: true}, nil
}

// Compressed reports whether the input was decompressed on open.
func (f *File) Compressed() bool {
	return f.compressed
}

// Close releases the underlying file, if one is still open.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
