package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
)

// minFlipOpacity is where a flipping digit starts fading back in.
const minFlipOpacity = 0.25

// unitCard is one countdown box: a large value over its plural label.
type unitCard struct {
	bg    *canvas.Rectangle
	value *canvas.Text
	label *canvas.Text
	base  color.NRGBA
}

func newUnitCard() *unitCard {
	fg := theme.Color(theme.ColorNameForeground)

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = theme.InputRadiusSize()
	bg.SetMinSize(fyne.NewSize(config.CountdownTextSize*2.5, config.CountdownTextSize*2.2))

	value := canvas.NewText("--", fg)
	value.TextSize = config.CountdownTextSize
	value.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	value.Alignment = fyne.TextAlignCenter

	label := canvas.NewText("", fg)
	label.Alignment = fyne.TextAlignCenter

	return &unitCard{
		bg:    bg,
		value: value,
		label: label,
		base:  color.NRGBAModel.Convert(fg).(color.NRGBA),
	}
}

func (c *unitCard) object() fyne.CanvasObject {
	return container.NewStack(c.bg, container.NewPadded(container.NewVBox(c.value, c.label)))
}

// set shows u. A flipping value fades back in over the flip.
func (c *unitCard) set(u display.Unit) {
	c.value.Text = u.Text
	c.value.Color = c.base
	if u.Flipping {
		c.value.Color = display.Fade(c.base, minFlipOpacity+(1-minFlipOpacity)*u.Progress)
	}
	c.value.Refresh()

	if c.label.Text != u.Label {
		c.label.Text = u.Label
		c.label.Refresh()
	}
}
