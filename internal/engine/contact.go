package engine

import (
	"time"

	"github.com/tartampluch/go-celebrate/internal/config"
)

// Recipient is the person being celebrated, as described by a vCard.
// It decouples the greeting from the vCard parsing details.
type Recipient struct {
	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the parsed BDAY value.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// Note becomes the love letter when the greeting has none.
	Note string

	// Photo is a URI or path used as the first hero image.
	Photo string
}

// Birthday converts the date of birth into the recurring countdown moment.
func (r Recipient) Birthday() config.Birthday {
	return config.Birthday{Month: int(r.DateOfBirth.Month()), Day: r.DateOfBirth.Day()}
}

// AgeAt returns the age reached on target, or 0 when the birth year is unknown.
func (r Recipient) AgeAt(target time.Time) int {
	if !r.YearKnown {
		return 0
	}
	return target.Year() - r.DateOfBirth.Year()
}

// ApplyTo overlays the recipient onto a greeting. The vCard wins for name and
// birthday; note and photo only fill gaps or lead the hero rotation.
func (r Recipient) ApplyTo(g *config.Greeting) {
	if r.Name != "" {
		g.Name = r.Name
	}
	if !r.DateOfBirth.IsZero() {
		hour, minute := g.Birthday.Hour, g.Birthday.Minute
		g.Birthday = r.Birthday()
		g.Birthday.Hour, g.Birthday.Minute = hour, minute
	}
	if r.Note != "" && g.LoveLetter == "" {
		g.LoveLetter = r.Note
	}
	if r.Photo != "" {
		g.HeroImages = append([]string{r.Photo}, g.HeroImages...)
	}
}
