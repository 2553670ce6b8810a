// Package textio reads exporter-produced text files. Spine exports made on
// Windows are frequently UTF-8 with a BOM or UTF-16; both are normalised to
// plain UTF-8 here.
package textio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so a leading UTF-8/UTF-16 BOM is honoured and stripped.
// Input without a BOM is read as UTF-8.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// ReadFile reads path fully through NewReader.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textio: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("textio: read %s: %w", path, err)
	}
	return data, nil
}
