package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Birthday is the recurring calendar moment the countdown targets.
// The year is never stored: the engine projects it onto the current or next year.
type Birthday struct {
	Month  int `yaml:"month"`
	Day    int `yaml:"day"`
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

// GalleryImage is one captioned photo of the gallery.
type GalleryImage struct {
	Src     string  `yaml:"src"`
	Caption string  `yaml:"caption"`
	Year    string  `yaml:"year"`
	Zoom    float64 `yaml:"zoom"`
}

// TimelineEvent is a dated milestone shown in the timeline section.
type TimelineEvent struct {
	Date        string `yaml:"date"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Moment is an entry of the special moments carousel.
type Moment struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

// Recipient optionally points at a vCard describing the person being celebrated.
// When set, FN/BDAY/NOTE/PHOTO from the card override the greeting fields.
type Recipient struct {
	Source string `yaml:"source"` // SourceModeLocal or SourceModeWeb
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
	User   string `yaml:"user"` // Password is looked up in the OS keyring
}

// Greeting is the static document the whole page is composed from.
// Every optional field left empty disables the feature depending on it.
type Greeting struct {
	Name           string          `yaml:"name"`
	HeroTitle      string          `yaml:"hero_title"`
	Birthday       Birthday        `yaml:"birthday"`
	LoveLetter     string          `yaml:"love_letter"`
	HeroImages     []string        `yaml:"hero_images"`
	Background     string          `yaml:"background"`
	Gallery        []GalleryImage  `yaml:"gallery"`
	Timeline       []TimelineEvent `yaml:"timeline"`
	SpecialMoments []Moment        `yaml:"special_moments"`
	AudioFile      string          `yaml:"audio_file"`
	VoiceMessage   string          `yaml:"voice_message"`
	Recipient      Recipient       `yaml:"recipient"`
	ServerPort     int             `yaml:"server_port"`
	FrameRate      int             `yaml:"frame_rate"`
}

// envOverrides lists the fields that can be forced from the environment.
// Zero values mean "not set".
type envOverrides struct {
	Name  string `env:"NAME"`
	Month int    `env:"MONTH"`
	Day   int    `env:"DAY"`
	Audio string `env:"AUDIO"`
	Port  int    `env:"PORT"`
	FPS   int    `env:"FPS"`
}

// DefaultGreeting returns the built-in greeting used when no file is given.
func DefaultGreeting() Greeting {
	return Greeting{
		Name:      FallbackName,
		HeroTitle: FallbackHeroTitle,
		Birthday:  Birthday{Month: int(time.January), Day: 15},
		LoveLetter: "Happiest birthday to the most gorgeous girl.\n" +
			"Since the day you came into my life, everything feels more beautiful and complete.\n" +
			"Thank you for being mine, today and always.",
		HeroImages: []string{"assets/img_1.jpg", "assets/img_2.png", "assets/img_3.png"},
		Background: "images/aurora.png",
		Gallery: []GalleryImage{
			{Src: "assets/1.jpg", Caption: "Beautiful memory", Year: "2022"},
			{Src: "assets/2.jpg", Caption: "Special day", Year: "2022"},
			{Src: "assets/2023.1.jpg", Caption: "Our first Birthday", Year: "2023"},
			{Src: "assets/2024.3.jpg", Caption: "Concert Lovers", Year: "2024"},
			{Src: "assets/2025.6.jpeg", Caption: "Love Birds", Year: "2025"},
		},
		Timeline: []TimelineEvent{
			{Date: "2022-11-09", Title: "The Best Day of My Life", Description: "A day that changed everything"},
			{Date: "2023-01-15", Title: "Our First Birthday Together", Description: "Celebrating together for the first time"},
			{Date: "2024-02-14", Title: "Celebrating Our Love", Description: "Our first Valentine's Day together"},
		},
		SpecialMoments: []Moment{
			{Image: "assets/art.jpeg", Caption: "Our art date"},
			{Image: "assets/concert.jpg", Caption: "Our first concert"},
		},
		FrameRate: DefaultFrameRate,
	}
}

// LoadGreeting builds the greeting from defaults, the optional YAML file at path,
// and GO_CELEBRATE_* environment overrides, then validates it.
func LoadGreeting(path string) (Greeting, error) {
	g := DefaultGreeting()
	log := slog.With(LogKeyComponent, CompConfig)

	if path == "" {
		log.Info(MsgGreetingDefault)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return Greeting{}, fmt.Errorf("%s: %w", ErrGreetingRead, err)
		}
		if err := yaml.Unmarshal(data, &g); err != nil {
			return Greeting{}, fmt.Errorf("%s: %w", ErrGreetingParse, err)
		}
		log.Info(MsgGreetingLoaded, LogKeyFile, path, LogKeyName, g.Name)
	}

	if err := g.applyEnv(); err != nil {
		return Greeting{}, err
	}

	if err := g.Validate(); err != nil {
		return Greeting{}, err
	}
	return g, nil
}

// applyEnv overlays non-empty environment values onto the greeting.
func (g *Greeting) applyEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%s: %w", ErrGreetingEnv, err)
	}

	if o.Name != "" {
		g.Name = o.Name
	}
	if o.Month != 0 {
		g.Birthday.Month = o.Month
	}
	if o.Day != 0 {
		g.Birthday.Day = o.Day
	}
	if o.Audio != "" {
		g.AudioFile = o.Audio
	}
	if o.Port != 0 {
		g.ServerPort = o.Port
	}
	if o.FPS != 0 {
		g.FrameRate = o.FPS
	}
	return nil
}

// Validate checks the fields that cannot degrade gracefully.
func (g Greeting) Validate() error {
	b := g.Birthday
	if b.Month < 1 || b.Month > 12 {
		return errors.New(ErrInvalidMonth)
	}

	// Feb 29 is accepted; non-leap years normalize it to March 1st.
	lastDay := time.Date(DefaultLeapYear, time.Month(b.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if b.Day < 1 || b.Day > lastDay {
		return errors.New(ErrInvalidDay)
	}

	if b.Hour < 0 || b.Hour > 23 || b.Minute < 0 || b.Minute > 59 {
		return errors.New(ErrInvalidHour)
	}

	if g.ServerPort != 0 && (g.ServerPort < MinPort || g.ServerPort > MaxPort) {
		return errors.New(ErrPortRange)
	}
	return nil
}

// FrameInterval converts the frame rate into a ticker period.
// Out of range rates fall back to DefaultFrameRate.
func (g Greeting) FrameInterval() time.Duration {
	fps := g.FrameRate
	if fps <= 0 || fps > MaxFrameRate {
		fps = DefaultFrameRate
	}
	return time.Second / time.Duration(fps)
}

// DisplayName returns the recipient name, never empty.
func (g Greeting) DisplayName() string {
	if g.Name == "" {
		return FallbackName
	}
	return g.Name
}
