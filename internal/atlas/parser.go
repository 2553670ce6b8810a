// Package atlas reads Spine texture atlas descriptors.
package atlas

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"spine-mesh-baker/internal/logging"
	"spine-mesh-baker/internal/textio"
)

// reservedKeys are the property keys recognised inside a page block.
var reservedKeys = map[string]bool{
	"rotate": true,
	"xy":     true,
	"size":   true,
	"orig":   true,
	"offset": true,
	"index":  true,
	"format": true,
	"filter": true,
	"repeat": true,
}

// imageExts are the page header extensions.
var imageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".tga", ".bmp"}

// HasImageExt reports whether name ends in a recognised page image extension.
func HasImageExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ParseFile reads and parses the atlas at path.
func ParseFile(path string) (*Atlas, error) {
	data, err := textio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", path, err)
	}
	a, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("atlas: parse %s: %w", path, err)
	}
	return a, nil
}

// Parse reads a line-oriented atlas descriptor.
//
// A line ending in an image extension opens a page. Inside a page, reserved
// `key: value` lines and other `identifier: value` lines are properties of the
// current region (or of the page before the first region); any other
// non-empty, non-comment line starts a new region.
func Parse(r io.Reader) (*Atlas, error) {
	log := logging.Logger()
	a := &Atlas{}

	var page *Page
	var region map[string]string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, isProp, err := splitProperty(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}

		if !isProp && HasImageExt(line) {
			page = &Page{
				Name:       line,
				Properties: make(map[string]string),
				Regions:    make(map[string]map[string]string),
			}
			a.Pages = append(a.Pages, page)
			region = nil
			continue
		}

		if page == nil {
			log.Debug("atlas: ignoring line before first page", "line", lineNo, "text", line)
			continue
		}

		if !isProp {
			if _, dup := page.Regions[line]; !dup {
				page.Order = append(page.Order, line)
			}
			region = make(map[string]string)
			page.Regions[line] = region
			continue
		}

		if region == nil {
			page.Properties[key] = value
		} else {
			region[key] = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("atlas: scan: %w", err)
	}

	return a, nil
}

// splitProperty classifies a trimmed line. Reserved keys must carry a ':'.
// Unreserved `identifier: value` lines are accepted as properties verbatim.
func splitProperty(line string) (key, value string, ok bool, err error) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		if reservedKeys[strings.Fields(line)[0]] {
			return "", "", false, ErrMalformedProperty
		}
		return "", "", false, nil
	}

	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if reservedKeys[key] || isIdentifier(key) {
		return key, value, true, nil
	}
	return "", "", false, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
