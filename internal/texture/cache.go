package texture

import (
	"image"
	"path/filepath"
	"sync"

	"spine-mesh-baker/internal/logging"
)

// Cache is a concurrency-safe texture cache keyed by absolute path, so the
// same page referenced from several jobs is decoded once per run.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(string) (*image.NRGBA, error)
}

type cacheEntry struct {
	img *image.NRGBA
	err error // load failures are cached too
}

// NewCache creates an empty cache that decodes with LoadTexture.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  LoadTexture,
	}
}

// Key is the cache key for path. Pages with the same file name in
// different directories are distinct entries.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Load returns the cached image for path, decoding it on first use.
func (c *Cache) Load(path string) (*image.NRGBA, error) {
	key := Key(path)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := c.load(path)
	if err == nil {
		logging.Logger().Info("texture: loaded", "path", path, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[key]; exists {
		return entry.img, entry.err
	}
	c.items[key] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached entries, failed loads included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
