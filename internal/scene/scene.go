// Package scene is the in-process host for baked meshes: it keeps surfaces,
// UV layers and textured materials in memory for the exporters.
package scene

import (
	"fmt"
	"image"
	"path/filepath"

	"spine-mesh-baker/internal/mathutil"
	"spine-mesh-baker/internal/mesh"
	"spine-mesh-baker/internal/texture"
)

// Surface is one baked polygon mesh.
type Surface struct {
	Name     string
	Vertices [][3]float64
	Faces    [][3]int
	UVs      [][2]float64 // one per vertex, nil when unassigned
	Material *Material
}

// Material is a texture-mapped material.
type Material struct {
	Name      string
	ImagePath string
	Image     *image.NRGBA
}

// Scene records host calls made by mesh.Build.
type Scene struct {
	Surfaces  []*Surface
	Materials []*Material

	textures *texture.Cache
	images   map[mesh.ImageHandle]loadedImage
}

type loadedImage struct {
	path string
	img  *image.NRGBA
}

var _ mesh.Host = (*Scene)(nil)
var _ mesh.SceneClearer = (*Scene)(nil)

// New returns an empty scene that loads images through textures.
func New(textures *texture.Cache) *Scene {
	return &Scene{
		textures: textures,
		images:   make(map[mesh.ImageHandle]loadedImage),
	}
}

func (s *Scene) CreateSurface(name string, vertices [][3]float64, faces [][3]int) (mesh.SurfaceHandle, error) {
	s.Surfaces = append(s.Surfaces, &Surface{
		Name:     name,
		Vertices: vertices,
		Faces:    faces,
	})
	return mesh.SurfaceHandle(len(s.Surfaces) - 1), nil
}

func (s *Scene) AssignUV(h mesh.SurfaceHandle, uvs [][2]float64) error {
	surf, err := s.surface(h)
	if err != nil {
		return err
	}
	if len(uvs) != len(surf.Vertices) {
		return fmt.Errorf("scene: %s: %d uvs for %d vertices", surf.Name, len(uvs), len(surf.Vertices))
	}
	surf.UVs = uvs
	return nil
}

// LoadOrGetCachedImage keys images by file name within this scene. The
// shared texture cache underneath is keyed by full path.
func (s *Scene) LoadOrGetCachedImage(path string) (mesh.ImageHandle, error) {
	h := mesh.ImageHandle(filepath.Base(path))
	if _, ok := s.images[h]; ok {
		return h, nil
	}
	img, err := s.textures.Load(path)
	if err != nil {
		return "", err
	}
	s.images[h] = loadedImage{path: path, img: img}
	return h, nil
}

func (s *Scene) CreateTexturedMaterial(name string, h mesh.ImageHandle) (mesh.MaterialHandle, error) {
	li, ok := s.images[h]
	if !ok {
		return 0, fmt.Errorf("scene: unknown image %q", h)
	}
	s.Materials = append(s.Materials, &Material{Name: name, ImagePath: li.path, Image: li.img})
	return mesh.MaterialHandle(len(s.Materials) - 1), nil
}

func (s *Scene) AttachMaterial(h mesh.SurfaceHandle, m mesh.MaterialHandle) error {
	surf, err := s.surface(h)
	if err != nil {
		return err
	}
	if int(m) < 0 || int(m) >= len(s.Materials) {
		return fmt.Errorf("scene: unknown material %d", m)
	}
	surf.Material = s.Materials[m]
	return nil
}

// ClearScene drops every surface and material. Loaded images stay cached.
func (s *Scene) ClearScene() error {
	s.Surfaces = nil
	s.Materials = nil
	return nil
}

func (s *Scene) surface(h mesh.SurfaceHandle) (*Surface, error) {
	if int(h) < 0 || int(h) >= len(s.Surfaces) {
		return nil, fmt.Errorf("scene: unknown surface %d", h)
	}
	return s.Surfaces[h], nil
}

// Bounds returns the XY bounding box of all surface vertices.
func (s *Scene) Bounds() mathutil.Bounds2 {
	b := mathutil.EmptyBounds()
	for _, surf := range s.Surfaces {
		for _, v := range surf.Vertices {
			b.Extend(v[0], v[1])
		}
	}
	return b
}

// Stats returns total vertex and face counts.
func (s *Scene) Stats() (vertices, faces int) {
	for _, surf := range s.Surfaces {
		vertices += len(surf.Vertices)
		faces += len(surf.Faces)
	}
	return vertices, faces
}
