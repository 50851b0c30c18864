package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

// minConfettiWidth keeps an edge-on confetti piece visible.
const minConfettiWidth = 0.2

var transparent = color.NRGBA{}

// particleLayer draws frames over the page with pooled canvas objects.
// Pools only grow; objects not used by a frame are hidden.
type particleLayer struct {
	root   *fyne.Container
	dots   []*canvas.Circle
	hearts []*canvas.Text
	glows  []*canvas.RadialGradient
}

func newParticleLayer() *particleLayer {
	return &particleLayer{root: container.NewWithoutLayout()}
}

// apply positions one object per particle view. Called on the Fyne thread.
func (l *particleLayer) apply(views []engine.View) {
	size := l.root.Size()
	var dots, hearts, glows int

	for _, v := range views {
		p := display.Project(v, size.Width, size.Height)
		c := display.ParticleColor(v)

		switch v.Kind {
		case engine.KindConfetti:
			d := l.dot(dots)
			dots++
			// A spinning disc seen from the side narrows with the angle.
			w := p.Size * float32(math.Max(minConfettiWidth, math.Abs(math.Cos(v.Rotation*math.Pi/180))))
			d.FillColor = c
			d.Resize(fyne.NewSize(w, p.Size))
			d.Move(fyne.NewPos(p.X-w/2, p.Y-p.Size/2))
			d.Show()
			d.Refresh()

		case engine.KindHeart:
			t := l.heart(hearts)
			hearts++
			t.Color = c
			t.TextSize = p.Size
			t.Move(fyne.NewPos(p.X-p.Size/2, p.Y-p.Size/2))
			t.Show()
			t.Refresh()

		default:
			g := l.glow(glows)
			glows++
			g.StartColor = c
			g.Resize(fyne.NewSize(p.Size, p.Size))
			g.Move(fyne.NewPos(p.X-p.Size/2, p.Y-p.Size/2))
			g.Show()
			g.Refresh()
		}
	}

	for _, d := range l.dots[dots:] {
		d.Hide()
	}
	for _, t := range l.hearts[hearts:] {
		t.Hide()
	}
	for _, g := range l.glows[glows:] {
		g.Hide()
	}
}

// visible counts the objects currently shown.
func (l *particleLayer) visible() int {
	n := 0
	for _, o := range l.root.Objects {
		if o.Visible() {
			n++
		}
	}
	return n
}

func (l *particleLayer) dot(i int) *canvas.Circle {
	if i < len(l.dots) {
		return l.dots[i]
	}
	d := canvas.NewCircle(transparent)
	l.dots = append(l.dots, d)
	l.root.Add(d)
	return d
}

func (l *particleLayer) heart(i int) *canvas.Text {
	if i < len(l.hearts) {
		return l.hearts[i]
	}
	t := canvas.NewText(config.HeartGlyph, transparent)
	l.hearts = append(l.hearts, t)
	l.root.Add(t)
	return t
}

func (l *particleLayer) glow(i int) *canvas.RadialGradient {
	if i < len(l.glows) {
		return l.glows[i]
	}
	g := canvas.NewRadialGradient(transparent, transparent)
	l.glows = append(l.glows, g)
	l.root.Add(g)
	return g
}
