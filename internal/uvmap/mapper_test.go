package uvmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spine-mesh-baker/internal/atlas"
)

func info(regions ...atlas.Region) atlas.Info {
	m := make(map[string]atlas.Region, len(regions))
	for _, r := range regions {
		m[r.Name] = r
	}
	return atlas.Info{Page: "p.png", Width: 200, Height: 100, Regions: m}
}

func TestMapFullFrameIdentity(t *testing.T) {
	m := Mapper{
		Info:       info(atlas.Region{Name: "full", Width: 200, Height: 100}),
		Adjustment: 1,
	}
	in := []float64{0, 0, 1, 0, 0.25, 0.75, 1, 1}
	out, ok := m.Map("full", in)
	require.True(t, ok)
	assert.InDeltaSlice(t, in, out, 1e-12)
}

func TestMapUnrotated(t *testing.T) {
	m := Mapper{
		Info:       info(atlas.Region{Name: "r", X: 50, Y: 20, Width: 100, Height: 40}),
		Adjustment: 1,
	}
	out, ok := m.Map("r", []float64{0.5, 0.5})
	require.True(t, ok)
	assert.InDelta(t, 0.25+0.5*0.5, out[0], 1e-12)
	assert.InDelta(t, 0.2+0.5*0.4, out[1], 1e-12)
}

func TestMapRotated(t *testing.T) {
	m := Mapper{
		Info:       info(atlas.Region{Name: "r", X: 50, Y: 20, Width: 100, Height: 40, Rotated: true}),
		Adjustment: 1,
	}
	f, ok := m.Frame("r")
	require.True(t, ok)

	out, ok := m.Map("r", []float64{0, 0, 1, 1, 0.5, 0.25})
	require.True(t, ok)
	// (0,0) lands at (region_x, region_y + region_width).
	assert.InDelta(t, f.U, out[0], 1e-12)
	assert.InDelta(t, f.V+f.Width, out[1], 1e-12)
	// (1,1) lands at (region_x + region_height, region_y).
	assert.InDelta(t, f.U+f.Height, out[2], 1e-12)
	assert.InDelta(t, f.V, out[3], 1e-12)
	assert.InDelta(t, f.U+0.25*f.Height, out[4], 1e-12)
	assert.InDelta(t, f.V+0.5*f.Width, out[5], 1e-12)
}

func TestMapAdjustmentDivides(t *testing.T) {
	m := Mapper{
		Info:       info(atlas.Region{Name: "r", X: 100, Y: 50, Width: 100, Height: 50}),
		Adjustment: 2,
	}
	f, ok := m.Frame("r")
	require.True(t, ok)
	assert.Equal(t, Frame{U: 0.25, V: 0.25, Width: 0.25, Height: 0.25}, f)
}

func TestMapMissingRegionPassThrough(t *testing.T) {
	m := Mapper{Info: info(), Adjustment: 2}
	in := []float64{0.1, 0.2}
	out, ok := m.Map("nope", in)
	assert.False(t, ok)
	assert.Equal(t, in, out)
}

func TestMapKeepsCardinality(t *testing.T) {
	m := Mapper{Info: info(atlas.Region{Name: "r", Width: 200, Height: 100}), Adjustment: 1}
	out, _ := m.Map("r", []float64{0.1, 0.2, 0.3})
	assert.Len(t, out, 3)
	assert.Equal(t, 0.3, out[2])
}
