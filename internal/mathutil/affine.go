package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LocalAffine builds the 3×3 homogeneous 2D transform T(x,y) · R(rot) · S(sx,sy).
// Scale multiplies the already rotated basis columns.
func LocalAffine(x, y, rotationDeg, scaleX, scaleY float64) mgl64.Mat3 {
	t := mgl64.Translate2D(x, y)
	r := mgl64.HomogRotate2D(mgl64.DegToRad(rotationDeg))
	s := mgl64.Scale2D(scaleX, scaleY)
	return t.Mul3(r).Mul3(s)
}

// TransformPoint applies m to (x, y, 1).
func TransformPoint(m mgl64.Mat3, x, y float64) (float64, float64) {
	p := m.Mul3x1(mgl64.Vec3{x, y, 1})
	return p[0], p[1]
}

// IsIdentity checks if the matrix is approximately identity.
func IsIdentity(m mgl64.Mat3) bool {
	return m.ApproxEqualThreshold(mgl64.Ident3(), 1e-8)
}

// Rotation returns the rotation angle in degrees encoded in m's X basis.
func Rotation(m mgl64.Mat3) float64 {
	return mgl64.RadToDeg(math.Atan2(m.At(1, 0), m.At(0, 0)))
}
