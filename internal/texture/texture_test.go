package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 50, A: 255})
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadTexturePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	writePNG(t, path, 4, 3)

	img, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Rect.Dx())
	assert.Equal(t, 3, img.Rect.Dy())
	assert.Equal(t, color.NRGBA{R: 30, G: 20, B: 50, A: 255}, img.NRGBAAt(3, 2))
}

func TestLoadTextureTGA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "page.tga")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, src.Rect, img.Rect)
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, img.NRGBAAt(1, 0))
}

func TestLoadTextureUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.psd")
	require.NoError(t, os.WriteFile(path, []byte("8BPS"), 0644))
	_, err := LoadTexture(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadTextureMissing(t *testing.T) {
	_, err := LoadTexture(filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}

func TestCacheLoadsOncePerPath(t *testing.T) {
	calls := 0
	c := NewCache()
	c.load = func(path string) (*image.NRGBA, error) {
		calls++
		return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
	}

	a, err := c.Load("/one/page.png")
	require.NoError(t, err)
	b, err := c.Load("/one/sub/../page.png")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())
}

func TestCacheSameNameDifferentDirs(t *testing.T) {
	c := NewCache()
	c.load = func(path string) (*image.NRGBA, error) {
		if filepath.Base(filepath.Dir(path)) == "hero" {
			return image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil
		}
		return image.NewNRGBA(image.Rect(0, 0, 16, 8)), nil
	}

	hero, err := c.Load("/jobs/hero/skeleton.png")
	require.NoError(t, err)
	goblin, err := c.Load("/jobs/goblin/skeleton.png")
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), hero.Rect)
	assert.Equal(t, image.Rect(0, 0, 16, 8), goblin.Rect)
	assert.Equal(t, 2, c.Len())
}

func TestCacheCachesFailures(t *testing.T) {
	calls := 0
	c := NewCache()
	c.load = func(string) (*image.NRGBA, error) {
		calls++
		return nil, errors.New("boom")
	}
	_, err := c.Load("x.png")
	assert.Error(t, err)
	img, err := c.Load("x.png")
	assert.Error(t, err)
	assert.Nil(t, img)
	assert.Equal(t, 1, calls)
}

func TestCacheConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	writePNG(t, path, 2, 2)
	c := NewCache()

	var wg sync.WaitGroup
	results := make([]*image.NRGBA, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Load(path)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Same(t, results[0], r)
	}
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a", "deep", "Hero.png"), 1, 1)
	writePNG(t, filepath.Join(dir, "Hero.png"), 1, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())

	path, ok := idx.ResolvePath(`images\hero.PNG`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Hero.png"), path)

	_, ok = idx.ResolvePath("missing.png")
	assert.False(t, ok)
}
