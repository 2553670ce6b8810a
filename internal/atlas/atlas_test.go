package atlas

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRegionAtlas = `
hero.png
size: 1024,512
format: RGBA8888
filter: Linear,Linear
repeat: none
# comment line
head
  rotate: false
  xy: 2, 4
  size: 100, 80
  orig: 100, 80
  offset: 0, 0
  index: -1
arm
  rotate: true
  xy: 200,10
  size: 40,120
  orig: 40,120
  offset: 0,0
  index: -1
`

func TestParseTwoRegions(t *testing.T) {
	a, err := Parse(strings.NewReader(twoRegionAtlas))
	require.NoError(t, err)
	require.Len(t, a.Pages, 1)

	m := a.Map()
	require.Contains(t, m, "hero.png")
	regions := m["hero.png"]
	assert.Len(t, regions, 2)
	assert.Equal(t, "2, 4", regions["head"]["xy"])
	assert.Equal(t, "true", regions["arm"]["rotate"])
	assert.Equal(t, []string{"head", "arm"}, a.Pages[0].Order)

	p := a.Pages[0]
	assert.Equal(t, "1024,512", p.Properties["size"])
	assert.Equal(t, "RGBA8888", p.Properties["format"])
}

func TestResolveTypedRegions(t *testing.T) {
	a, err := Parse(strings.NewReader(twoRegionAtlas))
	require.NoError(t, err)

	info := Resolve(a)
	assert.Equal(t, "hero.png", info.Page)
	assert.Equal(t, 1024, info.Width)
	assert.Equal(t, 512, info.Height)
	require.Len(t, info.Regions, 2)
	assert.Equal(t, Region{Name: "head", X: 2, Y: 4, Width: 100, Height: 80}, info.Regions["head"])
	assert.Equal(t, Region{Name: "arm", X: 200, Y: 10, Width: 40, Height: 120, Rotated: true}, info.Regions["arm"])
}

func TestParseMalformedProperty(t *testing.T) {
	_, err := Parse(strings.NewReader("a.png\nhead\n  xy 1,2\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedProperty))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
}

func TestParseUnknownKeyStoredVerbatim(t *testing.T) {
	a, err := Parse(strings.NewReader("a.png\npma: true\nhead\n  bounds: 1,2,3,4\n  custom_key: hello world\n"))
	require.NoError(t, err)
	assert.Equal(t, "true", a.Pages[0].Properties["pma"])
	assert.Equal(t, "hello world", a.Pages[0].Regions["head"]["custom_key"])
}

func TestResolveDefaultsAndExclusions(t *testing.T) {
	src := "a.png\nfull\n  xy: 0,0\n  size: 10,10\n  rotate: TRUE\nnosize\n  xy: 1,1\nbounded\n  bounds: 5,6,7,8\n  rotate: 90\n"
	a, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	info := Resolve(a)
	assert.Equal(t, DefaultPageSize, info.Width)
	assert.Equal(t, DefaultPageSize, info.Height)
	assert.True(t, info.Regions["full"].Rotated)
	assert.NotContains(t, info.Regions, "nosize")
	assert.Equal(t, Region{Name: "bounded", X: 5, Y: 6, Width: 7, Height: 8, Rotated: true}, info.Regions["bounded"])
}

func TestResolveFirstPageOnly(t *testing.T) {
	src := "one.png\nsize: 64,64\nr1\n  xy: 0,0\n  size: 8,8\n\ntwo.png\nsize: 128,128\nr2\n  xy: 0,0\n  size: 8,8\n"
	a, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, a.Pages, 2)

	info := Resolve(a)
	assert.Equal(t, "one.png", info.Page)
	assert.Equal(t, 64, info.Width)
	assert.Contains(t, info.Regions, "r1")
	assert.NotContains(t, info.Regions, "r2")
}

func TestResolveNoPages(t *testing.T) {
	info := Resolve(&Atlas{})
	assert.Empty(t, info.Page)
	assert.Empty(t, info.Regions)
	assert.Equal(t, DefaultPageSize, info.Width)
}

func TestParseFileWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.atlas")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(twoRegionAtlas)...)
	require.NoError(t, os.WriteFile(path, data, 0644))

	a, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, a.Pages, 1)
	assert.Equal(t, "hero.png", a.Pages[0].Name)
}
