package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-celebrate/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"EnvPrefix", config.EnvPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Celebrate/"), "UserAgent must start with AppName/")
}

// TestParticleBudgets guards the celebration numbers the animation is tuned for.
func TestParticleBudgets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 300, config.ConfettiCapacity)
	assert.Equal(t, 500, config.ConfettiInitialBurst)
	assert.Equal(t, 100, config.ConfettiBurstSize)
	assert.Equal(t, 2*time.Second, config.ConfettiBurstInterval)
	assert.Equal(t, 50, config.HeartBurstSize)
	assert.Equal(t, 3*time.Second, config.HeartClearDelay)

	// A burst must fit in the store, otherwise it would evict itself.
	assert.LessOrEqual(t, config.ConfettiBurstSize, config.ConfettiCapacity)
	assert.LessOrEqual(t, config.HeartBurstSize, config.HeartCapacity)
}

// TestPalettes_AreHexColors keeps palettes parseable by the display layer.
func TestPalettes_AreHexColors(t *testing.T) {
	palettes := map[string][]string{
		"celebration": config.PaletteCelebration,
		"hearts":      config.PaletteHearts,
		"sparkle":     config.PaletteSparkle,
		"aurora":      config.PaletteAurora,
	}

	for name, p := range palettes {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, p)
			for _, c := range p {
				assert.Len(t, c, 7, "color %q should be #RRGGBB", c)
				assert.True(t, strings.HasPrefix(c, "#"))
			}
		})
	}
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Greater(t, config.DefaultFrameRate, 0)
	assert.LessOrEqual(t, config.DefaultFrameRate, config.MaxFrameRate)
}
