package raster

// FrameBuffer holds the rendering target as a flat slice for cache locality.
// Surfaces are painted in slot order, so no depth buffer is kept.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // non-premultiplied RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a transparent color buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}
