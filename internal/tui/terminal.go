package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

// minVisibleAlpha hides particles too faded to read as a terminal glyph.
const minVisibleAlpha = 40

// Lover receives heart burst requests; engine.Runner implements it.
type Lover interface {
	MoreLove() bool
}

// Player is the background track the music key toggles; *audio.Track implements it.
type Player interface {
	Play()
	Pause()
	Playing() bool
}

// Terminal renders frames on a tcell screen and turns key presses into actions.
type Terminal struct {
	Music Player // nil when no background track is configured

	screen    tcell.Screen
	catalog   *display.Catalog
	countdown *display.Countdown
	name      string
	lover     Lover

	frames chan engine.Frame
}

// OpenScreen creates and initializes the real terminal screen.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrScreenInit, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrScreenInit, err)
	}
	return screen, nil
}

// New wires a terminal display. The screen must already be initialized.
func New(screen tcell.Screen, catalog *display.Catalog, name string, lover Lover) *Terminal {
	return &Terminal{
		screen:    screen,
		catalog:   catalog,
		countdown: display.NewCountdown(catalog),
		name:      name,
		lover:     lover,
		frames:    make(chan engine.Frame, config.ChannelBufferSize),
	}
}

// Present queues a frame for drawing. Only the latest frame is kept; the
// runner goroutine never waits for the terminal.
func (t *Terminal) Present(f engine.Frame) {
	for {
		select {
		case t.frames <- f:
			return
		default:
		}
		select {
		case <-t.frames:
		default:
		}
	}
}

// Run draws frames and handles keys until ctx ends or the user quits.
// It owns the screen and finalizes it before returning.
func (t *Terminal) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompTUI)

	events := make(chan tcell.Event, config.ActionBufferSize)
	quit := make(chan struct{})
	polled := make(chan struct{})

	go func() {
		defer close(polled)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	defer func() {
		close(quit)
		t.screen.Fini()
		<-polled
	}()

	t.screen.HideCursor()

	for {
		select {
		case <-ctx.Done():
			return

		case f := <-t.frames:
			t.draw(f)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				switch ev.Rune() {
				case config.KeyMoreLove:
					if t.lover != nil {
						t.lover.MoreLove()
					}
				case config.KeyMusic:
					t.toggleMusic()
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				log.Debug(config.MsgTUIResize, config.LogKeyWidth, w, config.LogKeyHeight, h)
				t.screen.Sync()
			}
		}
	}
}

// toggleMusic starts or pauses the background track. Without a track the
// key does nothing.
func (t *Terminal) toggleMusic() {
	if t.Music == nil {
		return
	}
	if t.Music.Playing() {
		t.Music.Pause()
		return
	}
	t.Music.Play()
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == config.KeyQuit
	}
	return false
}

func (t *Terminal) draw(f engine.Frame) {
	s := t.screen
	s.Clear()
	w, h := s.Size()

	for _, v := range f.Particles {
		x, y, ok := display.Cell(v, w, h)
		if !ok {
			continue
		}
		c := display.ParticleColor(v)
		if c.A < minVisibleAlpha {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		s.SetContent(x, y, display.Glyph(v), nil, style)
	}

	mid := h / 2
	bold := tcell.StyleDefault.Bold(true)
	t.center(mid-2, display.Headline(t.catalog, f, t.name), bold.Foreground(tcell.ColorHotPink))

	if f.Celebrating {
		t.center(mid, t.catalog.Msg(config.TKeyItsTime, nil), bold.Foreground(tcell.ColorGold))
	} else {
		t.drawUnits(mid, t.countdown.Units(f.At, f.Remaining))
	}

	t.center(h-1, t.catalog.Msg(config.TKeyLblTUIHelp, nil), tcell.StyleDefault.Dim(true))
	s.Show()
}

// drawUnits writes "DD Days  HH Hours ..." centered on row y; flipping digits
// are highlighted for the duration of the flip.
func (t *Terminal) drawUnits(y int, units []display.Unit) {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = u.Text + " " + u.Label
	}
	line := strings.Join(parts, "  ")

	w, _ := t.screen.Size()
	x := (w - runewidth.StringWidth(line)) / 2

	for i, u := range units {
		digits := tcell.StyleDefault.Bold(true)
		if u.Flipping {
			digits = digits.Reverse(true)
		}
		x = t.text(x, y, u.Text, digits)
		x = t.text(x, y, " "+u.Label, tcell.StyleDefault)
		if i < len(units)-1 {
			x = t.text(x, y, "  ", tcell.StyleDefault)
		}
	}
}

func (t *Terminal) center(y int, s string, style tcell.Style) {
	w, _ := t.screen.Size()
	t.text((w-runewidth.StringWidth(s))/2, y, s, style)
}

// text writes s from column x and returns the column after it.
func (t *Terminal) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
