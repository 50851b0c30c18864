package display

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

// Unit is one card of the countdown (days, hours, minutes or seconds).
type Unit struct {
	Key      string // translation key of the label
	Label    string
	Value    int
	Text     string  // two-digit rendering, more digits when days exceed 99
	Flipping bool    // the value changed less than FlipDuration ago
	Progress float64 // flip progress in [0,1]; 1 when idle
}

// Countdown turns TimeRemaining into labelled units and remembers when each
// value last changed. The change times are its only state.
type Countdown struct {
	catalog *Catalog
	last    [4]int
	changed [4]time.Time
	primed  bool
}

// NewCountdown creates a tracker. A nil catalog renders the raw keys.
func NewCountdown(catalog *Catalog) *Countdown {
	return &Countdown{catalog: catalog}
}

var unitKeys = [4]string{
	config.TKeyUnitDays,
	config.TKeyUnitHours,
	config.TKeyUnitMinutes,
	config.TKeyUnitSeconds,
}

// Units maps the remaining time at now to the four cards.
// The first call never flips, so a fresh display does not animate every digit.
func (c *Countdown) Units(now time.Time, r engine.TimeRemaining) []Unit {
	values := [4]int{r.Days, r.Hours, r.Minutes, r.Seconds}
	units := make([]Unit, len(values))

	for i, v := range values {
		if c.primed && v != c.last[i] {
			c.changed[i] = now
		}
		c.last[i] = v

		progress := 1.0
		if !c.changed[i].IsZero() {
			progress = FlipProgress(now.Sub(c.changed[i]))
		}

		units[i] = Unit{
			Key:      unitKeys[i],
			Label:    c.catalog.Plural(unitKeys[i], v),
			Value:    v,
			Text:     fmt.Sprintf("%02d", v),
			Flipping: progress < 1,
			Progress: progress,
		}
	}
	c.primed = true
	return units
}

// FlipProgress normalizes the time since a digit changed against FlipDuration.
func FlipProgress(since time.Duration) float64 {
	if since <= 0 {
		return 0
	}
	if since >= config.FlipDuration {
		return 1
	}
	return float64(since) / float64(config.FlipDuration)
}

// Headline returns the line shown above the countdown: the heading while
// waiting, the birthday wish once celebrating.
func Headline(catalog *Catalog, f engine.Frame, name string) string {
	data := map[string]any{"Name": name}
	if f.Celebrating {
		return catalog.Msg(config.TKeyHappyBirthday, data)
	}
	return catalog.Msg(config.TKeyCountdownHead, data)
}

// HeroIndex picks the hero image shown at now, rotating every HeroRotateInterval.
func HeroIndex(now, start time.Time, n int) int {
	if n <= 0 {
		return -1
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/config.HeroRotateInterval) % n
}
