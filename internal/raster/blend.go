package raster

import "math"

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

const invGamma = 1.0 / 2.2

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// blendOver composites a straight-alpha source texel over the 4-byte pixel
// dst, mixing color in linear light.
func blendOver(dst []uint8, r, g, b, a uint8) {
	if a == 255 || dst[3] == 0 {
		dst[0], dst[1], dst[2], dst[3] = r, g, b, a
		return
	}
	sa := float64(a) / 255
	da := float64(dst[3]) / 255
	oa := sa + da*(1-sa)
	if oa <= 0 {
		return
	}
	mix := func(s, d uint8) uint8 {
		lin := (srgbToLinear[s]*sa + srgbToLinear[d]*da*(1-sa)) / oa
		return clamp255(math.Pow(lin, invGamma) * 255)
	}
	dst[0] = mix(r, dst[0])
	dst[1] = mix(g, dst[1])
	dst[2] = mix(b, dst[2])
	dst[3] = clamp255(oa * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
