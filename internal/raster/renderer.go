// Package raster renders baked scenes to images for previews.
package raster

import (
	"image"

	"spine-mesh-baker/internal/scene"
)

// Untextured surfaces are painted in this color.
var defaultFill = [4]uint8{160, 160, 170, 255}

// RenderScene paints every surface of s, in creation order, into a
// size×size image (rendered at size*supersample). The pose is fitted to
// the frame with a margin; world +Y points up.
func RenderScene(s *scene.Scene, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	bounds := s.Bounds()
	if bounds.IsEmpty() {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	cx, cy := bounds.Center()
	span := bounds.Span()
	if span < 0.001 {
		span = 0.001
	}
	margin := 16 * supersample
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)

	for _, surf := range s.Surfaces {
		if len(surf.Vertices) == 0 {
			continue
		}

		px := make([]float64, len(surf.Vertices))
		py := make([]float64, len(surf.Vertices))
		for i, v := range surf.Vertices {
			px[i] = (v[0]-cx)*scale + half
			py[i] = -(v[1]-cy)*scale + half
		}

		var tex *image.NRGBA
		if surf.Material != nil {
			tex = surf.Material.Image
		}

		for _, f := range surf.Faces {
			RasterizeTriangle(fb, px, py, surf.UVs, f, tex, defaultFill)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}
