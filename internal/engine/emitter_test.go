package engine

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_BurstIDsIncrease(t *testing.T) {
	e := NewSeededEmitter(1, 2)

	id1, ps := e.Burst(SpecHeart, 50)
	id2, _ := e.Burst(SpecHeart, 50)
	id3, none := e.Burst(SpecHeart, 0)

	assert.Len(t, ps, 50)
	assert.Less(t, id1, id2)
	assert.Less(t, id2, id3)
	assert.Empty(t, none)

	for _, p := range ps {
		assert.Equal(t, id1, p.Burst)
	}
}

func TestEmitter_SeededIsReproducible(t *testing.T) {
	_, a := NewSeededEmitter(7, 9).Burst(SpecConfettiInitial, 20)
	_, b := NewSeededEmitter(7, 9).Burst(SpecConfettiInitial, 20)
	assert.Equal(t, a, b)
}

// TestEmitter_RespectsRanges samples every spec and checks the drawn values.
func TestEmitter_RespectsRanges(t *testing.T) {
	specs := map[string]EmitSpec{
		"confetti initial": SpecConfettiInitial,
		"confetti burst":   SpecConfettiBurst,
		"heart":            SpecHeart,
		"sparkle":          SpecSparkle,
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			_, ps := NewSeededEmitter(3, 4).Burst(spec, 500)
			require.Len(t, ps, 500)

			for _, p := range ps {
				life := p.Lifetime.Seconds()
				assert.Equal(t, spec.Kind, p.Kind)
				assert.True(t, spec.X.Contains(p.X), "x %v", p.X)
				assert.True(t, spec.Y.Contains(p.Y), "y %v", p.Y)
				assert.True(t, spec.Life.Contains(life), "life %v", life)
				assert.True(t, spec.Delay.Contains(p.Delay.Seconds()), "delay %v", p.Delay)
				assert.True(t, spec.Size.Contains(p.Size), "size %v", p.Size)
				assert.True(t, within(spec.TravelX, p.VX*life), "travel %v", p.VX*life)
				assert.True(t, within(spec.Spin, p.Spin*life), "spin %v", p.Spin*life)
				assert.True(t, slices.Contains(spec.Palette, p.Color), "color %s", p.Color)

				if spec.Falls {
					assert.InDelta(t, spec.EndY, p.Y+p.VY*life, 1e-9, "lands on its destination")
				}
			}
		})
	}
}

// within tolerates the rounding of speed * lifetime round trips.
func within(r Range, v float64) bool {
	return v >= r.Min-1e-9 && v <= r.Max+1e-9
}

func TestEmitter_MotesDrift(t *testing.T) {
	_, ps := NewSeededEmitter(5, 6).Burst(SpecMote, 50)

	for _, p := range ps {
		assert.Equal(t, time.Duration(0), p.Lifetime)
		assert.True(t, SpecMote.Drift.Contains(p.VX))
		assert.True(t, SpecMote.Drift.Contains(p.VY))
		assert.True(t, SpecMote.Opacity.Contains(p.BaseOpacity))
		assert.True(t, SpecMote.Size.Contains(p.Size))
	}
}

func TestRange(t *testing.T) {
	r := Range{Min: -1, Max: 1}
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(1.01))

	f := Fixed(6)
	assert.Equal(t, 6.0, f.draw(nil), "degenerate ranges never touch the source")
}
