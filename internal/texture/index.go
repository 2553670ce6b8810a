package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase image file names to filesystem paths, so an atlas
// page name can be found next to its descriptor.
type Index struct {
	entries map[string]string // base.lower() → full path
}

var indexedExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".tga": true, ".bmp": true,
}

// BuildIndex scans dir and its subdirectories for page images.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !indexedExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		key := strings.ToLower(d.Name())
		// The shallowest match wins.
		existing, exists := idx.entries[key]
		if !exists || depth(path) < depth(existing) {
			idx.entries[key] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a page name, or ("", false).
func (idx *Index) ResolvePath(pageName string) (string, bool) {
	pageName = strings.ReplaceAll(pageName, "\\", "/")
	path, ok := idx.entries[strings.ToLower(filepath.Base(pageName))]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}
