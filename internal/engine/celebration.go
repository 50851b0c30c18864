package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// Frame is an immutable snapshot handed to displays.
type Frame struct {
	At          time.Time
	Target      time.Time
	Remaining   TimeRemaining
	Celebrating bool
	Particles   []View // background first: motes, confetti, sparkles, hearts
}

// pendingClear removes a heart burst once its delay has elapsed.
type pendingClear struct {
	burst uint64
	at    time.Time
}

// Option customizes a Celebration.
type Option func(*Celebration)

// WithEmitter injects a (typically seeded) emitter.
func WithEmitter(e *Emitter) Option {
	return func(c *Celebration) { c.emitter = e }
}

// WithEasing changes the motion curve of timed particles.
func WithEasing(ease Easing) Option {
	return func(c *Celebration) { c.ease = ease }
}

// WithoutAmbient disables the drifting background motes.
func WithoutAmbient() Option {
	return func(c *Celebration) { c.ambientOff = true }
}

// Celebration is the state container of the countdown and its effects.
// It is driven by three events: Second, Frame and MoreLove. None of its methods
// are safe for concurrent use; Runner serializes them on one goroutine.
type Celebration struct {
	target  time.Time
	emitter *Emitter
	ease    Easing

	confetti *ParticleStore
	hearts   *ParticleStore
	sparkles *ParticleStore
	ambient  *ParticleStore

	remaining   TimeRemaining
	celebrating bool
	nextBurst   time.Time
	clears      []pendingClear

	started       bool
	lastFrame     time.Time
	ambientAt     time.Time
	ambientSeeded bool
	ambientOff    bool
}

// NewCelebration creates the state for a countdown to target.
func NewCelebration(target time.Time, opts ...Option) *Celebration {
	c := &Celebration{target: target}
	for _, opt := range opts {
		opt(c)
	}
	if c.emitter == nil {
		c.emitter = NewEmitter()
	}

	c.confetti = NewParticleStore(config.ConfettiCapacity, c.ease)
	c.hearts = NewParticleStore(config.HeartCapacity, c.ease)
	c.sparkles = NewParticleStore(config.SparkleCount, c.ease)
	c.ambient = NewParticleStore(config.MoteCount, c.ease)
	return c
}

// Target returns the immutable countdown target.
func (c *Celebration) Target() time.Time {
	return c.target
}

// Remaining returns the value computed by the last Second call.
func (c *Celebration) Remaining() TimeRemaining {
	return c.remaining
}

// Celebrating reports whether the countdown has reached zero.
func (c *Celebration) Celebrating() bool {
	return c.celebrating
}

// Second recomputes the time remaining, then checks for the zero crossing.
// It returns true only on the call that starts the celebration.
func (c *Celebration) Second(now time.Time) bool {
	c.remaining = Remaining(now, c.target)

	if !c.remaining.IsZero() || c.celebrating {
		return false
	}
	c.start(now)
	return true
}

// start fires the grand burst and arms the recurring bursts.
func (c *Celebration) start(now time.Time) {
	c.celebrating = true
	c.nextBurst = now.Add(config.ConfettiBurstInterval)

	_, ps := c.emitter.Burst(SpecConfettiInitial, config.ConfettiInitialBurst)
	c.confetti.Add(ps...)
	c.topUpSparkles()

	slog.Info(config.MsgCelebrationOn,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTarget, c.target,
		config.LogKeyCount, c.confetti.Len())
}

// Frame advances every effect to now and fires whatever became due.
func (c *Celebration) Frame(now time.Time) {
	if !c.started {
		c.started = true
		c.lastFrame = now
		c.ambientAt = now.Add(config.AmbientSeedDelay)
	}

	elapsed := now.Sub(c.lastFrame)
	c.lastFrame = now

	for _, s := range c.stores() {
		s.Tick(elapsed)
		s.Prune()
	}

	c.fireClears(now)

	if c.celebrating {
		if !now.Before(c.nextBurst) {
			c.burst()
			c.nextBurst = c.nextBurst.Add(config.ConfettiBurstInterval)
			// After a long stall, resume the cadence from now instead of catching up.
			if !now.Before(c.nextBurst) {
				c.nextBurst = now.Add(config.ConfettiBurstInterval)
			}
		}
		c.topUpSparkles()
	}

	if !c.ambientOff && !c.ambientSeeded && !now.Before(c.ambientAt) {
		c.ambientSeeded = true
		_, ps := c.emitter.Burst(SpecMote, config.MoteCount)
		c.ambient.Add(ps...)
	}
}

// MoreLove emits a heart burst that clears itself after HeartClearDelay.
// The heart store holds a single burst, so a press while hearts are still
// showing replaces them rather than adding to them.
func (c *Celebration) MoreLove(now time.Time) uint64 {
	id, ps := c.emitter.Burst(SpecHeart, config.HeartBurstSize)
	c.hearts.Add(ps...)
	c.clears = append(c.clears, pendingClear{burst: id, at: now.Add(config.HeartClearDelay)})

	slog.Debug(config.MsgBurst,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyKind, KindHeart.String(),
		config.LogKeyCount, len(ps))
	return id
}

// Count returns the number of live particles of a kind.
func (c *Celebration) Count(kind Kind) int {
	switch kind {
	case KindConfetti:
		return c.confetti.Len()
	case KindHeart:
		return c.hearts.Len()
	case KindSparkle:
		return c.sparkles.Len()
	case KindMote:
		return c.ambient.Len()
	default:
		return 0
	}
}

// Snapshot copies the current state into a Frame.
func (c *Celebration) Snapshot(now time.Time) Frame {
	total := 0
	for _, s := range c.stores() {
		total += s.Len()
	}

	views := make([]View, 0, total)
	for _, s := range c.stores() {
		views = s.Snapshot(views)
	}

	return Frame{
		At:          now,
		Target:      c.target,
		Remaining:   c.remaining,
		Celebrating: c.celebrating,
		Particles:   views,
	}
}

// stores lists the particle stores in drawing order.
func (c *Celebration) stores() []*ParticleStore {
	return []*ParticleStore{c.ambient, c.confetti, c.sparkles, c.hearts}
}

func (c *Celebration) burst() {
	_, ps := c.emitter.Burst(SpecConfettiBurst, config.ConfettiBurstSize)
	evicted := c.confetti.Add(ps...)

	slog.Debug(config.MsgBurst,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyKind, KindConfetti.String(),
		config.LogKeyCount, len(ps),
		config.LogKeyEvicted, evicted)
}

func (c *Celebration) fireClears(now time.Time) {
	pending := c.clears[:0]
	for _, pc := range c.clears {
		if now.Before(pc.at) {
			pending = append(pending, pc)
			continue
		}
		c.hearts.RemoveBurst(pc.burst)
	}
	c.clears = pending
}

// topUpSparkles keeps the sparkle field at full strength while celebrating,
// emulating an endlessly repeating twinkle.
func (c *Celebration) topUpSparkles() {
	missing := config.SparkleCount - c.sparkles.Len()
	if missing <= 0 {
		return
	}
	_, ps := c.emitter.Burst(SpecSparkle, missing)
	c.sparkles.Add(ps...)
}
