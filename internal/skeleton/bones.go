package skeleton

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"spine-mesh-baker/internal/mathutil"
)

// Pose holds the global transform of every bone for one build pass.
// It is read-only once built.
type Pose struct {
	bones  []BoneData
	index  map[string]int
	global map[int]mgl64.Mat3
}

const (
	unvisited = iota
	resolving
	resolved
)

// ResolveGlobalTransforms computes the bind-pose global transform of each bone.
//
// A bone's local transform is T(x,y)·R(rotation)·S(scaleX,scaleY); its global
// transform is parent·local, roots use local alone. Each bone is computed once.
// An unknown parent name, a duplicate name or a parent cycle is an error.
func ResolveGlobalTransforms(bones []BoneData) (*Pose, error) {
	p := &Pose{
		bones:  bones,
		index:  make(map[string]int, len(bones)),
		global: make(map[int]mgl64.Mat3, len(bones)),
	}
	for i, b := range bones {
		if _, dup := p.index[b.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		p.index[b.Name] = i
	}

	state := make([]uint8, len(bones))
	var chain []int
	var resolve func(i int) (mgl64.Mat3, error)
	resolve = func(i int) (mgl64.Mat3, error) {
		switch state[i] {
		case resolved:
			return p.global[i], nil
		case resolving:
			return mgl64.Mat3{}, fmt.Errorf("%w: %s", ErrCyclicSkeleton, p.describeCycle(chain, i))
		}
		state[i] = resolving
		chain = append(chain, i)

		b := bones[i]
		m := mathutil.LocalAffine(b.X, b.Y, b.Rotation, b.ScaleX, b.ScaleY)
		if b.Parent != "" {
			pi, ok := p.index[b.Parent]
			if !ok {
				return mgl64.Mat3{}, fmt.Errorf("%w: bone %q has parent %q", ErrUnknownParent, b.Name, b.Parent)
			}
			parent, err := resolve(pi)
			if err != nil {
				return mgl64.Mat3{}, err
			}
			m = parent.Mul3(m)
		}

		chain = chain[:len(chain)-1]
		state[i] = resolved
		p.global[i] = m
		return m, nil
	}

	for i := range bones {
		if _, err := resolve(i); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Pose) describeCycle(chain []int, repeat int) string {
	start := 0
	for k, i := range chain {
		if i == repeat {
			start = k
			break
		}
	}
	names := make([]string, 0, len(chain)-start+1)
	for _, i := range chain[start:] {
		names = append(names, fmt.Sprintf("%q", p.bones[i].Name))
	}
	names = append(names, fmt.Sprintf("%q", p.bones[repeat].Name))
	return strings.Join(names, " -> ")
}

// Global returns the global transform of bone i.
func (p *Pose) Global(i int) (mgl64.Mat3, bool) {
	m, ok := p.global[i]
	return m, ok
}

// Index returns the index of the bone called name.
func (p *Pose) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Len returns the number of resolved bones.
func (p *Pose) Len() int {
	return len(p.global)
}

// Bone returns the definition of bone i.
func (p *Pose) Bone(i int) BoneData {
	return p.bones[i]
}
