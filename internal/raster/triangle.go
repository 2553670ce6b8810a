package raster

import (
	"image"
	"math"
)

// RasterizeTriangle fills one screen-space triangle, sampling tex when uvs
// cover all three corners and falling back to fill otherwise.
// Texels with alpha below 8 are discarded.
//
// This is the HOT PATH: no allocation inside the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py []float64,
	uvs [][2]float64,
	vi [3]int,
	tex *image.NRGBA,
	fill [4]uint8,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0 := px[vi[0]], py[vi[0]]
	x1, y1 := px[vi[1]], py[vi[1]]
	x2, y2 := px[vi[2]], py[vi[2]]

	hasUV := tex != nil && len(uvs) == nv
	var u0, v0, u1, v1, u2, v2 float64
	if hasUV {
		// Host V runs bottom-up; page rows run top-down.
		u0, v0 = uvs[vi[0]][0], 1-uvs[vi[0]][1]
		u1, v1 = uvs[vi[1]][0], 1-uvs[vi[1]][1]
		u2, v2 = uvs[vi[2]][0], 1-uvs[vi[2]][1]
	}

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.Width-1)
	maxY = min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			cr, cg, cb, ca := fill[0], fill[1], fill[2], fill[3]
			if hasUV {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0 + w1*v1 + w2*v2
				cr, cg, cb, ca = SampleTexture(tex, u, v)
			}
			if ca < 8 {
				continue
			}

			i := (rowOff + sx) * 4
			blendOver(fb.Color[i:i+4], cr, cg, cb, ca)
		}
	}
}
