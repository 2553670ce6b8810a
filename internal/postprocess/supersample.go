// Package postprocess finishes rendered previews.
package postprocess

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Downsample scales img to w×h. Filtering runs on premultiplied alpha
// (image.RGBA) so transparent edges do not pick up dark halos.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	// CatmullRom approximates Lanczos.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	return imaging.Clone(dst)
}
