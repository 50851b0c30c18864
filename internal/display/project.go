package display

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

// Point is a particle projected onto a surface, in surface units.
type Point struct {
	X, Y float32
	Size float32 // diameter after scaling
}

// Project maps a particle from percent space to a width x height surface.
func Project(v engine.View, width, height float32) Point {
	return Point{
		X:    float32(v.X) / 100 * width,
		Y:    float32(v.Y) / 100 * height,
		Size: float32(v.Size * v.Scale),
	}
}

// Cell maps a particle to a terminal cell. ok is false when it lies outside
// the grid (confetti starts above the top edge).
func Cell(v engine.View, cols, rows int) (x, y int, ok bool) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(v.X / 100 * float64(cols)))
	y = int(math.Floor(v.Y / 100 * float64(rows)))
	ok = x >= 0 && x < cols && y >= 0 && y < rows
	return x, y, ok
}

// confettiGlyphs fake rotation in a terminal: the glyph follows the angle.
var confettiGlyphs = []rune{config.ConfettiGlyph, '▪', '▬', '▮'}

// Glyph returns the terminal rune for a particle.
func Glyph(v engine.View) rune {
	switch v.Kind {
	case engine.KindHeart:
		return config.HeartRune
	case engine.KindSparkle:
		return config.SparkleGlyph
	case engine.KindMote:
		return config.MoteGlyph
	default:
		deg := math.Mod(v.Rotation, 360)
		if deg < 0 {
			deg += 360
		}
		return confettiGlyphs[int(deg/90)%len(confettiGlyphs)]
	}
}

// ParseHex decodes #RRGGBB (or RRGGBB). Malformed input yields opaque white.
func ParseHex(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if len(s) != 6 {
		return white
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return white
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}
}

// Fade applies opacity in [0,1] to the alpha channel.
func Fade(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// ParticleColor is the faded color of a particle.
func ParticleColor(v engine.View) color.NRGBA {
	return Fade(ParseHex(v.Color), v.Opacity)
}
