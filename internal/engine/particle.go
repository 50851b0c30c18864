package engine

import "time"

// Kind identifies the visual effect a particle belongs to.
type Kind int

const (
	KindConfetti Kind = iota
	KindHeart
	KindSparkle
	KindMote
)

func (k Kind) String() string {
	switch k {
	case KindConfetti:
		return "confetti"
	case KindHeart:
		return "heart"
	case KindSparkle:
		return "sparkle"
	case KindMote:
		return "mote"
	default:
		return "unknown"
	}
}

// Particle is a single transient visual element.
// Positions are percentages of the viewport so displays of any size can project them.
type Particle struct {
	ID    uint64
	Burst uint64
	Kind  Kind

	X, Y   float64 // percent of viewport width/height
	VX, VY float64 // mean speed in percent per second

	Rotation float64 // degrees
	Spin     float64 // mean degrees per second

	Color       string
	Size        float64 // pixels at scale 1
	Opacity     float64
	Scale       float64
	BaseOpacity float64 // motes keep a constant opacity

	Age      time.Duration
	Delay    time.Duration
	Lifetime time.Duration // zero means the particle never expires
}

// progress is the normalized position on the particle's timeline, in [0,1].
func (p *Particle) progress() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	active := p.Age - p.Delay
	if active <= 0 {
		return 0
	}
	if active >= p.Lifetime {
		return 1
	}
	return float64(active) / float64(p.Lifetime)
}

// Expired reports whether the particle's lifetime has fully elapsed.
func (p *Particle) Expired() bool {
	return p.Lifetime > 0 && p.Age >= p.Delay+p.Lifetime
}

// View is the read-only projection of a particle handed to displays.
type View struct {
	ID       uint64
	Kind     Kind
	X, Y     float64
	Rotation float64
	Opacity  float64
	Scale    float64
	Size     float64
	Color    string
}

func (p *Particle) view() View {
	return View{
		ID:       p.ID,
		Kind:     p.Kind,
		X:        p.X,
		Y:        p.Y,
		Rotation: p.Rotation,
		Opacity:  p.Opacity,
		Scale:    p.Scale,
		Size:     p.Size,
		Color:    p.Color,
	}
}

// keyframes are evenly spaced samples over a timeline, linearly interpolated.
type keyframes []float64

func (k keyframes) at(t float64) float64 {
	switch {
	case len(k) == 0:
		return 1
	case len(k) == 1 || t <= 0:
		return k[0]
	case t >= 1:
		return k[len(k)-1]
	}
	pos := t * float64(len(k)-1)
	i := int(pos)
	frac := pos - float64(i)
	return k[i] + (k[i+1]-k[i])*frac
}

// track groups the opacity and scale curves of a kind.
type track struct {
	opacity keyframes
	scale   keyframes
}

var tracks = map[Kind]track{
	KindConfetti: {opacity: keyframes{1, 1, 0.8, 0}, scale: keyframes{0, 1.2, 1, 0.8}},
	KindHeart:    {opacity: keyframes{1, 1, 0.8, 0}, scale: keyframes{1, 1.2, 0.8, 0.5}},
	KindSparkle:  {opacity: keyframes{0, 1, 0}, scale: keyframes{0, 1.5, 0}},
}

// applyTrack refreshes opacity and scale from the particle's timeline position.
func (p *Particle) applyTrack() {
	tr, ok := tracks[p.Kind]
	if !ok {
		p.Opacity = p.BaseOpacity
		p.Scale = 1
		return
	}
	t := p.progress()
	p.Opacity = tr.opacity.at(t)
	p.Scale = tr.scale.at(t)
}
