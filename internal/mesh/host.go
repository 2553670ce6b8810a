// Package mesh assembles skinned, atlas-mapped surfaces from a skeleton
// document and hands them to a Host for materialisation.
package mesh

// SurfaceHandle identifies a surface created by a Host.
type SurfaceHandle int

// MaterialHandle identifies a material created by a Host.
type MaterialHandle int

// ImageHandle identifies a loaded texture image.
type ImageHandle string

// Host is the environment that turns geometry into renderable objects.
type Host interface {
	// CreateSurface accepts any number of disconnected triangle islands;
	// it does not need to check manifoldness.
	CreateSurface(name string, vertices [][3]float64, faces [][3]int) (SurfaceHandle, error)
	// AssignUV sets one UV per vertex.
	AssignUV(s SurfaceHandle, uvs [][2]float64) error
	// LoadOrGetCachedImage loads path once per run and returns the cached
	// handle on later calls.
	LoadOrGetCachedImage(path string) (ImageHandle, error)
	CreateTexturedMaterial(name string, img ImageHandle) (MaterialHandle, error)
	AttachMaterial(s SurfaceHandle, m MaterialHandle) error
}

// SceneClearer is implemented by hosts that can drop all existing objects.
// The builder only calls it when Options.ClearScene is set.
type SceneClearer interface {
	ClearScene() error
}
