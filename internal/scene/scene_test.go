package scene

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/mesh"
	"spine-mesh-baker/internal/skeleton"
	"spine-mesh-baker/internal/texture"
)

func writePage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "page.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 8, 8))))
	return path
}

func TestSceneHostCalls(t *testing.T) {
	s := New(texture.NewCache())
	h, err := s.CreateSurface("a:a", [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][3]int{{0, 1, 2}})
	require.NoError(t, err)

	assert.Error(t, s.AssignUV(h, [][2]float64{{0, 0}}))
	require.NoError(t, s.AssignUV(h, [][2]float64{{0, 0}, {1, 0}, {0, 1}}))

	img, err := s.LoadOrGetCachedImage(writePage(t, t.TempDir()))
	require.NoError(t, err)
	again, err := s.LoadOrGetCachedImage("elsewhere/page.png")
	require.NoError(t, err)
	assert.Equal(t, img, again)

	m, err := s.CreateTexturedMaterial("Material_a:a", img)
	require.NoError(t, err)
	require.NoError(t, s.AttachMaterial(h, m))
	assert.Equal(t, "Material_a:a", s.Surfaces[0].Material.Name)
	assert.NotNil(t, s.Surfaces[0].Material.Image)

	assert.Error(t, s.AttachMaterial(9, m))
	assert.Error(t, s.AttachMaterial(h, 9))
	_, err = s.CreateTexturedMaterial("x", "nope.png")
	assert.Error(t, err)

	v, f := s.Stats()
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, f)

	b := s.Bounds()
	assert.Equal(t, 1.0, b.Span())

	require.NoError(t, s.ClearScene())
	assert.Empty(t, s.Surfaces)
	assert.Empty(t, s.Materials)
}

func TestSceneMissingImage(t *testing.T) {
	s := New(texture.NewCache())
	_, err := s.LoadOrGetCachedImage(filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}

func TestBuildIntoScene(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir)

	doc, err := skeleton.Decode([]byte(`{
	  "bones": [{"name": "root"}, {"name": "arm", "parent": "root", "x": 10, "rotation": 90}],
	  "slots": [{"name": "arm", "bone": "arm"}],
	  "skins": [{"attachments": {"arm": {"arm": {"type": "mesh",
	    "uvs": [0,0, 1,0, 1,1, 0,1], "triangles": [0,1,2, 0,2,3],
	    "vertices": [1,1,0,0,1, 1,1,4,0,1, 1,1,4,2,1, 1,1,0,2,1]}}}}]
	}`))
	require.NoError(t, err)
	a, err := atlas.Parse(strings.NewReader("page.png\nsize: 8,8\narm\n  rotate: true\n  xy: 0,0\n  size: 4,8\n"))
	require.NoError(t, err)

	s := New(texture.NewCache())
	report, err := mesh.Build(doc, atlas.Resolve(a), s, mesh.Options{TextureSizeAdjustment: 1, TexturePath: page})
	require.NoError(t, err)
	require.Len(t, report.Surfaces, 1)
	require.Len(t, s.Surfaces, 1)

	surf := s.Surfaces[0]
	assert.Len(t, surf.Faces, 2)
	require.Len(t, surf.UVs, 4)
	require.NotNil(t, surf.Material)

	// Bone "arm" is rotated 90° at (10,0): local (4,0) lands at (10,4).
	assert.InDelta(t, 10, surf.Vertices[1][0], 1e-9)
	assert.InDelta(t, 4, surf.Vertices[1][1], 1e-9)

	// Rotated region 4x8 on an 8x8 page: (0,0) -> (0, 0+0.5), flipped V -> 0.5.
	assert.InDelta(t, 0, surf.UVs[0][0], 1e-12)
	assert.InDelta(t, 0.5, surf.UVs[0][1], 1e-12)
}
