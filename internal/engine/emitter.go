package engine

import (
	"math/rand/v2"
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Fixed returns a degenerate range always yielding v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) draw(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// EmitSpec documents the random ranges of one effect.
// Travel and spin are totals over the particle lifetime; Drift is a speed for
// untimed particles.
type EmitSpec struct {
	Kind     Kind
	X, Y     Range   // start position, percent
	TravelX  Range   // horizontal displacement over the lifetime, percent
	EndY     float64 // vertical destination, percent (ignored when Falls is false)
	Falls    bool
	Drift    Range // percent per second on both axes, untimed particles only
	Rotation Range // initial rotation, degrees
	Spin     Range // rotation over the lifetime, degrees
	Life     Range // seconds; zero means untimed
	Delay    Range // seconds before the timeline starts
	Size     Range // pixels
	Opacity  Range // base opacity for untimed particles
	Palette  []string
}

// Documented emission ranges.
var (
	SpecConfettiInitial = EmitSpec{
		Kind:     KindConfetti,
		X:        Range{0, 100},
		Y:        Range{-60, -10},
		TravelX:  Range{-200, 200},
		EndY:     110,
		Falls:    true,
		Rotation: Range{0, 360},
		Spin:     Range{-225, 225},
		Life:     Range{4, 7},
		Size:     Range{4, 10},
		Palette:  config.PaletteCelebration,
	}

	SpecConfettiBurst = EmitSpec{
		Kind:     KindConfetti,
		X:        Range{0, 100},
		Y:        Fixed(-10),
		TravelX:  Range{-150, 150},
		EndY:     110,
		Falls:    true,
		Rotation: Range{0, 360},
		Spin:     Range{-180, 180},
		Life:     Range{4, 7},
		Size:     Range{4, 10},
		Palette:  config.PaletteCelebration,
	}

	SpecHeart = EmitSpec{
		Kind:     KindHeart,
		X:        Range{0, 100},
		Y:        Fixed(-10),
		TravelX:  Range{-25, 25},
		EndY:     100,
		Falls:    true,
		Rotation: Range{0, 360},
		Spin:     Fixed(360),
		Life:     Range{2.5, 4},
		Size:     Range{20, 35},
		Palette:  config.PaletteHearts,
	}

	SpecSparkle = EmitSpec{
		Kind:    KindSparkle,
		X:       Range{0, 100},
		Y:       Range{0, 100},
		Spin:    Fixed(360),
		Life:    Fixed(1.5),
		Delay:   Range{0, 2},
		Size:    Fixed(6),
		Palette: config.PaletteSparkle,
	}

	SpecMote = EmitSpec{
		Kind:    KindMote,
		X:       Range{0, 100},
		Y:       Range{0, 100},
		Drift:   Range{-1.5, 1.5},
		Size:    Range{1, 4},
		Opacity: Range{0.2, 0.7},
		Palette: config.PaletteAurora,
	}
)

// Emitter turns specs into randomized particles.
type Emitter struct {
	rng       *rand.Rand
	lastBurst uint64
}

// NewEmitter creates an emitter with a time-seeded source.
func NewEmitter() *Emitter {
	seed := uint64(time.Now().UnixNano())
	return NewSeededEmitter(seed, seed>>1)
}

// NewSeededEmitter creates a reproducible emitter.
func NewSeededEmitter(seed1, seed2 uint64) *Emitter {
	return &Emitter{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Burst generates n particles from spec, all tagged with a fresh burst id.
func (e *Emitter) Burst(spec EmitSpec, n int) (uint64, []Particle) {
	e.lastBurst++
	id := e.lastBurst
	if n <= 0 {
		return id, nil
	}

	ps := make([]Particle, 0, n)
	for range n {
		ps = append(ps, e.particle(spec, id))
	}
	return id, ps
}

func (e *Emitter) particle(spec EmitSpec, burst uint64) Particle {
	p := Particle{
		Burst:       burst,
		Kind:        spec.Kind,
		X:           spec.X.draw(e.rng),
		Y:           spec.Y.draw(e.rng),
		Rotation:    spec.Rotation.draw(e.rng),
		Size:        spec.Size.draw(e.rng),
		BaseOpacity: spec.Opacity.draw(e.rng),
		Delay:       seconds(spec.Delay.draw(e.rng)),
		Lifetime:    seconds(spec.Life.draw(e.rng)),
		Color:       e.pick(spec.Palette),
	}

	if p.Lifetime <= 0 {
		p.VX = spec.Drift.draw(e.rng)
		p.VY = spec.Drift.draw(e.rng)
		return p
	}

	life := p.Lifetime.Seconds()
	p.VX = spec.TravelX.draw(e.rng) / life
	if spec.Falls {
		p.VY = (spec.EndY - p.Y) / life
	}
	p.Spin = spec.Spin.draw(e.rng) / life
	return p
}

func (e *Emitter) pick(palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[e.rng.IntN(len(palette))]
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
