package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrate/internal/config"
)

func writeGreeting(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func TestLoadGreeting_DefaultsWhenNoPath(t *testing.T) {
	g, err := config.LoadGreeting("")
	require.NoError(t, err)

	assert.Equal(t, config.FallbackName, g.Name)
	assert.Equal(t, 1, g.Birthday.Month, "Built-in countdown targets January 15th")
	assert.Equal(t, 15, g.Birthday.Day)
	assert.Empty(t, g.AudioFile, "Audio is optional and disabled by default")
}

func TestLoadGreeting_YAMLOverridesDefaults(t *testing.T) {
	path := writeGreeting(t, `
name: Alice
birthday:
  month: 6
  day: 21
  hour: 18
gallery:
  - src: photos/a.jpg
    caption: Beach
    zoom: 1.2
audio_file: song.mp3
frame_rate: 30
`)

	g, err := config.LoadGreeting(path)
	require.NoError(t, err)

	assert.Equal(t, "Alice", g.Name)
	assert.Equal(t, config.Birthday{Month: 6, Day: 21, Hour: 18}, g.Birthday)
	require.Len(t, g.Gallery, 1, "Lists are replaced, not merged")
	assert.Equal(t, 1.2, g.Gallery[0].Zoom)
	assert.Equal(t, "song.mp3", g.AudioFile)
	assert.Equal(t, time.Second/30, g.FrameInterval())

	// Untouched fields keep their default.
	assert.Equal(t, config.FallbackHeroTitle, g.HeroTitle)
}

func TestLoadGreeting_EnvOverrides(t *testing.T) {
	t.Setenv("GO_CELEBRATE_NAME", "Bob")
	t.Setenv("GO_CELEBRATE_MONTH", "3")
	t.Setenv("GO_CELEBRATE_DAY", "4")
	t.Setenv("GO_CELEBRATE_PORT", "18090")

	g, err := config.LoadGreeting("")
	require.NoError(t, err)

	assert.Equal(t, "Bob", g.Name)
	assert.Equal(t, 3, g.Birthday.Month)
	assert.Equal(t, 4, g.Birthday.Day)
	assert.Equal(t, 18090, g.ServerPort)
}

func TestLoadGreeting_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := config.LoadGreeting(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrGreetingRead)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := config.LoadGreeting(writeGreeting(t, "name: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrGreetingParse)
	})

	t.Run("Bad env value", func(t *testing.T) {
		t.Setenv("GO_CELEBRATE_MONTH", "june")
		_, err := config.LoadGreeting("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrGreetingEnv)
	})
}

func TestGreeting_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *config.Greeting)
		wantErr string
	}{
		{"Valid default", func(g *config.Greeting) {}, ""},
		{"Leap day accepted", func(g *config.Greeting) { g.Birthday = config.Birthday{Month: 2, Day: 29} }, ""},
		{"Month zero", func(g *config.Greeting) { g.Birthday.Month = 0 }, config.ErrInvalidMonth},
		{"Month thirteen", func(g *config.Greeting) { g.Birthday.Month = 13 }, config.ErrInvalidMonth},
		{"April 31st", func(g *config.Greeting) { g.Birthday = config.Birthday{Month: 4, Day: 31} }, config.ErrInvalidDay},
		{"Feb 30th", func(g *config.Greeting) { g.Birthday = config.Birthday{Month: 2, Day: 30} }, config.ErrInvalidDay},
		{"Hour 24", func(g *config.Greeting) { g.Birthday.Hour = 24 }, config.ErrInvalidHour},
		{"Minute 60", func(g *config.Greeting) { g.Birthday.Minute = 60 }, config.ErrInvalidHour},
		{"Port out of range", func(g *config.Greeting) { g.ServerPort = 70000 }, config.ErrPortRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := config.DefaultGreeting()
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestGreeting_FrameIntervalFallback(t *testing.T) {
	g := config.DefaultGreeting()
	want := time.Second / config.DefaultFrameRate

	for _, fps := range []int{0, -5, config.MaxFrameRate + 1} {
		g.FrameRate = fps
		assert.Equal(t, want, g.FrameInterval(), "fps=%d should fall back", fps)
	}
}

func TestGreeting_DisplayName(t *testing.T) {
	g := config.Greeting{}
	assert.Equal(t, config.FallbackName, g.DisplayName())
	g.Name = "Alice"
	assert.Equal(t, "Alice", g.DisplayName())
}
