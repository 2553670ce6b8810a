package mathutil

import "math"

// Bounds2 is an axis-aligned 2D bounding box.
type Bounds2 struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyBounds returns an inverted box that any Extend call will fix up.
func EmptyBounds() Bounds2 {
	return Bounds2{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

func (b *Bounds2) Extend(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxX = math.Max(b.MaxX, x)
	b.MaxY = math.Max(b.MaxY, y)
}

func (b Bounds2) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b Bounds2) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Span returns the larger of width and height.
func (b Bounds2) Span() float64 {
	return math.Max(b.MaxX-b.MinX, b.MaxY-b.MinY)
}
