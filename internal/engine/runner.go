package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// Sink receives every rendered frame. Implementations must not block for long:
// they are called from the runner goroutine.
type Sink interface {
	Present(Frame)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Frame)

// Present calls f(frame).
func (f SinkFunc) Present(frame Frame) {
	f(frame)
}

// Action is a user request forwarded to the runner goroutine.
type Action int

const (
	ActionMoreLove Action = iota
)

// Runner owns the Celebration and is its only mutator.
// A one-second ticker recomputes the countdown, a frame ticker advances particles,
// and user actions arrive over a buffered channel.
type Runner struct {
	Celebration   *Celebration
	Clock         Clock
	Sink          Sink
	FrameInterval time.Duration

	actions chan Action
}

// NewRunner wires a runner. The sink can be assigned later, before Run.
func NewRunner(c *Celebration, clock Clock, frameInterval time.Duration) *Runner {
	if clock == nil {
		clock = RealClock{}
	}
	return &Runner{
		Celebration:   c,
		Clock:         clock,
		FrameInterval: frameInterval,
		actions:       make(chan Action, config.ActionBufferSize),
	}
}

// MoreLove queues a heart burst. It never blocks; it reports false when the
// queue is full and the request was dropped.
func (r *Runner) MoreLove() bool {
	return r.send(ActionMoreLove)
}

func (r *Runner) send(a Action) bool {
	select {
	case r.actions <- a:
		return true
	default:
		slog.Warn(config.MsgActionDropped, config.LogKeyComponent, config.CompRunner)
		return false
	}
}

// Run drives the celebration until ctx is cancelled. Every ticker is released
// before it returns.
func (r *Runner) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompRunner)

	interval := r.FrameInterval
	if interval <= 0 {
		interval = time.Second / config.DefaultFrameRate
		log.Warn(config.MsgFrameFallback, config.LogKeyInterval, r.FrameInterval)
	}

	c := r.Celebration
	now := r.Clock.Now()
	c.Second(now)
	c.Frame(now)
	r.present(now)

	secondTicker := time.NewTicker(config.SecondInterval)
	defer secondTicker.Stop()
	frameTicker := time.NewTicker(interval)
	defer frameTicker.Stop()

	log.Info(config.MsgRunnerStart,
		config.LogKeyTarget, c.Target(),
		config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgRunnerStop)
			return

		case <-secondTicker.C:
			c.Second(r.Clock.Now())

		case a := <-r.actions:
			if a == ActionMoreLove {
				c.MoreLove(r.Clock.Now())
			}

		case <-frameTicker.C:
			now := r.Clock.Now()
			c.Frame(now)
			r.present(now)
		}
	}
}

func (r *Runner) present(now time.Time) {
	if r.Sink == nil {
		return
	}
	r.Sink.Present(r.Celebration.Snapshot(now))
}
