package display_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

func TestCatalog_PluralLabels(t *testing.T) {
	c := display.NewCatalog("en")

	assert.Equal(t, "Day", c.Plural(config.TKeyUnitDays, 1))
	assert.Equal(t, "Days", c.Plural(config.TKeyUnitDays, 2))
	assert.Equal(t, "Seconds", c.Plural(config.TKeyUnitSeconds, 0))
	assert.Equal(t, "Hour", c.Plural(config.TKeyUnitHours, 1))
}

func TestCatalog_TemplateAndFallbacks(t *testing.T) {
	c := display.NewCatalog("fr")

	assert.Equal(t, "Happy Birthday, Alice!", c.Msg(config.TKeyHappyBirthday, map[string]any{"Name": "Alice"}),
		"unknown languages fall back to English")
	assert.Equal(t, "no_such_key", c.Msg("no_such_key", nil))
	assert.Contains(t, c.Languages(), "en")

	var nilCatalog *display.Catalog
	assert.Equal(t, config.TKeyItsTime, nilCatalog.Msg(config.TKeyItsTime, nil))
}

// TestCountdown_Flip checks the transient flip flag of a changing unit.
func TestCountdown_Flip(t *testing.T) {
	cd := display.NewCountdown(display.NewCatalog("en"))
	t0 := time.Date(2025, 1, 14, 23, 59, 0, 0, time.UTC)

	units := cd.Units(t0, engine.TimeRemaining{Days: 1, Minutes: 1, Seconds: 5})
	require.Len(t, units, 4)
	for _, u := range units {
		assert.False(t, u.Flipping, "%s must not flip on the first frame", u.Key)
	}
	assert.Equal(t, "01", units[0].Text)
	assert.Equal(t, "Day", units[0].Label)
	assert.Equal(t, "Seconds", units[3].Label)

	t1 := t0.Add(time.Second)
	units = cd.Units(t1, engine.TimeRemaining{Days: 1, Minutes: 1, Seconds: 4})
	assert.True(t, units[3].Flipping)
	assert.Zero(t, units[3].Progress)
	assert.False(t, units[2].Flipping)

	units = cd.Units(t1.Add(150*time.Millisecond), engine.TimeRemaining{Days: 1, Minutes: 1, Seconds: 4})
	assert.InDelta(t, 0.5, units[3].Progress, 1e-9)

	units = cd.Units(t1.Add(config.FlipDuration), engine.TimeRemaining{Days: 1, Minutes: 1, Seconds: 4})
	assert.False(t, units[3].Flipping)
	assert.Equal(t, 1.0, units[3].Progress)
}

func TestCountdown_ThreeDigitDays(t *testing.T) {
	units := display.NewCountdown(nil).Units(time.Now(), engine.TimeRemaining{Days: 364})
	assert.Equal(t, "364", units[0].Text)
	assert.Equal(t, config.TKeyUnitDays, units[0].Label, "a nil catalog renders keys")
}

func TestHeadline(t *testing.T) {
	c := display.NewCatalog("en")
	assert.Equal(t, "Counting down to Alice's day", display.Headline(c, engine.Frame{}, "Alice"))
	assert.Equal(t, "Happy Birthday, Alice!", display.Headline(c, engine.Frame{Celebrating: true}, "Alice"))
}

func TestHeroIndex(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, -1, display.HeroIndex(start, start, 0))
	assert.Equal(t, 0, display.HeroIndex(start.Add(-time.Second), start, 3))
	assert.Equal(t, 0, display.HeroIndex(start.Add(2999*time.Millisecond), start, 3))
	assert.Equal(t, 1, display.HeroIndex(start.Add(3*time.Second), start, 3))
	assert.Equal(t, 0, display.HeroIndex(start.Add(9*time.Second), start, 3))
}

func TestProject(t *testing.T) {
	p := display.Project(engine.View{X: 50, Y: 25, Size: 10, Scale: 1.2}, 800, 600)
	assert.InDelta(t, 400, p.X, 1e-3)
	assert.InDelta(t, 150, p.Y, 1e-3)
	assert.InDelta(t, 12, p.Size, 1e-3)
}

func TestCell(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wantX  int
		wantY  int
		wantOK bool
	}{
		{"Origin", 0, 0, 0, 0, true},
		{"Center", 50, 50, 40, 12, true},
		{"Above the top edge", 10, -5, 8, -2, false},
		{"Right edge", 100, 10, 80, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := display.Cell(engine.View{X: tt.x, Y: tt.y}, 80, 24)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantX, x)
				assert.Equal(t, tt.wantY, y)
			}
		})
	}

	_, _, ok := display.Cell(engine.View{}, 0, 0)
	assert.False(t, ok)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, config.HeartRune, display.Glyph(engine.View{Kind: engine.KindHeart}))
	assert.Equal(t, config.SparkleGlyph, display.Glyph(engine.View{Kind: engine.KindSparkle}))
	assert.Equal(t, config.MoteGlyph, display.Glyph(engine.View{Kind: engine.KindMote}))
	assert.Equal(t, config.ConfettiGlyph, display.Glyph(engine.View{Kind: engine.KindConfetti, Rotation: -360}))
	assert.NotEqual(t,
		display.Glyph(engine.View{Kind: engine.KindConfetti, Rotation: 10}),
		display.Glyph(engine.View{Kind: engine.KindConfetti, Rotation: 100}))
}

func TestColors(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x14, B: 0x93, A: 0xff}, display.ParseHex("#FF1493"))
	assert.Equal(t, color.NRGBA{R: 0x16, G: 0xf8, B: 0xb6, A: 0xff}, display.ParseHex("16F8B6"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, display.ParseHex("#nope"))

	assert.Equal(t, uint8(128), display.Fade(display.ParseHex("#000000"), 0.5).A)
	assert.Equal(t, uint8(0), display.Fade(display.ParseHex("#000000"), -1).A)
	assert.Equal(t, uint8(0xff), display.Fade(display.ParseHex("#000000"), 3).A)

	c := display.ParticleColor(engine.View{Color: "#FFD700", Opacity: 0})
	assert.Zero(t, c.A)
}
