// Package uvmap moves attachment-local UVs into atlas page space.
package uvmap

import (
	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/logging"
)

// Mapper remaps normalised attachment UVs into the shared atlas texture.
//
// Adjustment divides every region fraction; it compensates for a working
// texture exported at a different resolution than the atlas describes.
type Mapper struct {
	Info       atlas.Info
	Adjustment float64
}

// Frame is a region expressed as fractions of the page.
type Frame struct {
	U, V          float64 // offset
	Width, Height float64 // extent
	Rotated       bool
}

// Frame returns the fractional frame of the named region.
func (m Mapper) Frame(name string) (Frame, bool) {
	r, ok := m.Info.Regions[name]
	if !ok || m.Info.Width <= 0 || m.Info.Height <= 0 {
		return Frame{}, false
	}
	adj := m.Adjustment
	if adj <= 0 {
		adj = 1
	}
	w := float64(m.Info.Width)
	h := float64(m.Info.Height)
	return Frame{
		U:       float64(r.X) / w / adj,
		V:       float64(r.Y) / h / adj,
		Width:   float64(r.Width) / w / adj,
		Height:  float64(r.Height) / h / adj,
		Rotated: r.Rotated,
	}, true
}

// Map returns uvs remapped into the region called name. When no region
// matches, uvs are returned unchanged and ok is false.
func (m Mapper) Map(name string, uvs []float64) (out []float64, ok bool) {
	f, ok := m.Frame(name)
	if !ok {
		logging.Logger().Warn("uvmap: atlas region not found, UVs passed through", "attachment", name)
		return uvs, false
	}

	out = make([]float64, len(uvs))
	copy(out, uvs)
	for i := 0; i+1 < len(uvs); i += 2 {
		out[i], out[i+1] = f.Apply(uvs[i], uvs[i+1])
	}
	return out, true
}

// Apply maps one UV pair. Rotated regions were packed turned 90°, so the
// source v drives the page u across the region height and 1-u drives the
// page v across the region width.
func (f Frame) Apply(u, v float64) (float64, float64) {
	if f.Rotated {
		return f.U + v*f.Height, f.V + (1-u)*f.Width
	}
	return f.U + u*f.Width, f.V + v*f.Height
}
