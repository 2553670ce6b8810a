package skeleton

import (
	"fmt"
	"math"

	"spine-mesh-baker/internal/logging"
	"spine-mesh-baker/internal/mathutil"
)

// Influence is one bone's pull on a vertex: an offset in the bone's local
// frame and a blend weight.
type Influence struct {
	Bone   int
	X, Y   float64
	Weight float64
}

// DecodeInfluences splits the packed encoding
// [n, bone, x, y, w, bone, x, y, w, ..., n, ...] into per-vertex influence
// lists. Each vertex consumes exactly 1+4n values.
func DecodeInfluences(data []float64) ([][]Influence, error) {
	var out [][]Influence
	i := 0
	for i < len(data) {
		n, err := asCount(data[i])
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d at offset %d: %v", ErrMalformedVertices, len(out), i, err)
		}
		i++
		if n > (len(data)-i)/4 {
			return nil, fmt.Errorf("%w: vertex %d needs %d values at offset %d, %d left",
				ErrTruncatedVertices, len(out), 4*n, i, len(data)-i)
		}

		infl := make([]Influence, n)
		for j := 0; j < n; j++ {
			bone, err := asCount(data[i])
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d bone index at offset %d: %v", ErrMalformedVertices, len(out), i, err)
			}
			infl[j] = Influence{
				Bone:   bone,
				X:      data[i+1],
				Y:      data[i+2],
				Weight: data[i+3],
			}
			i += 4
		}
		out = append(out, infl)
	}
	return out, nil
}

func asCount(v float64) (int, error) {
	if v < 0 || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a non-negative integer: %v", v)
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%v out of range", v)
	}
	return int(v), nil
}

// Skinner blends bone influences into world positions using a resolved Pose.
//
// An influence whose bone has no resolved transform contributes its offset
// as if already in world space, unless Strict is set, in which case Blend
// returns ErrUnresolvedBone.
type Skinner struct {
	Pose   *Pose
	Strict bool
}

// Blend returns the weighted sum of each influence's transformed offset.
// Weights are not renormalised. Z is always 0.
func (s Skinner) Blend(infl []Influence) ([3]float64, error) {
	var x, y float64
	for _, in := range infl {
		m, ok := s.Pose.Global(in.Bone)
		if !ok {
			if s.Strict {
				return [3]float64{}, fmt.Errorf("%w: bone %d", ErrUnresolvedBone, in.Bone)
			}
			logging.Logger().Debug("skeleton: influence bone unresolved, using offset as world", "bone", in.Bone)
			x += in.X * in.Weight
			y += in.Y * in.Weight
			continue
		}
		wx, wy := mathutil.TransformPoint(m, in.X, in.Y)
		x += wx * in.Weight
		y += wy * in.Weight
	}
	return [3]float64{x, y, 0}, nil
}

// Vertices decodes weighted vertex data and skins every vertex.
func (s Skinner) Vertices(data []float64) ([][3]float64, error) {
	all, err := DecodeInfluences(data)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(all))
	for i, infl := range all {
		v, err := s.Blend(infl)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// RigidVertices transforms unweighted x,y pairs by a single bone, the way
// Spine stores meshes that are bound to their slot's bone only.
func (s Skinner) RigidVertices(data []float64, bone int) ([][3]float64, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd unweighted vertex count %d", ErrMalformedVertices, len(data))
	}
	out := make([][3]float64, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		v, err := s.Blend([]Influence{{Bone: bone, X: data[i], Y: data[i+1], Weight: 1}})
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i/2, err)
		}
		out = append(out, v)
	}
	return out, nil
}
