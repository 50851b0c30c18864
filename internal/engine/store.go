package engine

import (
	"math"
	"time"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// EaseOut decelerates towards the end of the timeline.
func EaseOut(t float64) float64 {
	return t * (2 - t)
}

// Linear leaves progress untouched.
func Linear(t float64) float64 {
	return t
}

// ParticleStore owns an insertion-ordered, capacity-bounded set of particles.
// It is not safe for concurrent use; the runner goroutine is its only mutator.
type ParticleStore struct {
	items    []Particle
	capacity int
	nextID   uint64
	ease     Easing
}

// NewParticleStore creates a store. A capacity <= 0 means unbounded.
// A nil easing defaults to EaseOut.
func NewParticleStore(capacity int, ease Easing) *ParticleStore {
	if ease == nil {
		ease = EaseOut
	}
	size := capacity
	if size <= 0 {
		size = 0
	}
	return &ParticleStore{
		items:    make([]Particle, 0, size),
		capacity: capacity,
		ease:     ease,
	}
}

// Add appends particles, assigns their IDs and enforces the capacity.
// It returns how many old particles were evicted.
func (s *ParticleStore) Add(ps ...Particle) int {
	for _, p := range ps {
		s.nextID++
		p.ID = s.nextID
		p.applyTrack()
		s.items = append(s.items, p)
	}
	return s.EvictOldestBeyond(s.capacity)
}

// Tick advances every particle by elapsed.
// Timed particles move along their eased timeline; a linear easing reduces this to
// position += velocity * dt. Untimed particles drift linearly and wrap at the edges.
func (s *ParticleStore) Tick(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	dt := elapsed.Seconds()

	for i := range s.items {
		p := &s.items[i]

		if p.Lifetime <= 0 {
			p.Age += elapsed
			p.X = wrap(p.X + p.VX*dt)
			p.Y = wrap(p.Y + p.VY*dt)
			p.Rotation += p.Spin * dt
			p.applyTrack()
			continue
		}

		before := s.ease(p.progress())
		p.Age += elapsed
		after := s.ease(p.progress())

		step := (after - before) * p.Lifetime.Seconds()
		p.X += p.VX * step
		p.Y += p.VY * step
		p.Rotation += p.Spin * step
		p.applyTrack()
	}
}

// Prune removes expired particles and returns how many were dropped.
func (s *ParticleStore) Prune() int {
	return s.removeIf(func(p *Particle) bool { return p.Expired() })
}

// EvictOldestBeyond drops the oldest particles until at most capacity remain.
func (s *ParticleStore) EvictOldestBeyond(capacity int) int {
	if capacity <= 0 || len(s.items) <= capacity {
		return 0
	}
	n := len(s.items) - capacity
	copy(s.items, s.items[n:])
	s.items = s.items[:capacity]
	return n
}

// RemoveBurst drops every particle emitted by the given burst.
func (s *ParticleStore) RemoveBurst(burst uint64) int {
	return s.removeIf(func(p *Particle) bool { return p.Burst == burst })
}

// Clear empties the store.
func (s *ParticleStore) Clear() {
	s.items = s.items[:0]
}

// Len returns the number of live particles.
func (s *ParticleStore) Len() int {
	return len(s.items)
}

// Capacity returns the configured bound (<= 0 when unbounded).
func (s *ParticleStore) Capacity() int {
	return s.capacity
}

// Snapshot appends a view of every particle, oldest first, to dst.
func (s *ParticleStore) Snapshot(dst []View) []View {
	for i := range s.items {
		dst = append(dst, s.items[i].view())
	}
	return dst
}

// removeIf compacts the slice in place, preserving insertion order.
func (s *ParticleStore) removeIf(drop func(p *Particle) bool) int {
	kept := s.items[:0]
	for i := range s.items {
		if !drop(&s.items[i]) {
			kept = append(kept, s.items[i])
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// wrap folds a percentage coordinate back into [0,100).
func wrap(v float64) float64 {
	v = math.Mod(v, 100)
	if v < 0 {
		v += 100
	}
	return v
}
