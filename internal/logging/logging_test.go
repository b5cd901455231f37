package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel(" Debug ")
	assert.True(t, ok)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	lvl, ok = ParseLevel("off")
	assert.True(t, ok)
	assert.Equal(t, zerolog.Disabled, lvl)

	_, ok = ParseLevel("loud")
	assert.False(t, ok)

	_, ok = ParseLevel("")
	assert.False(t, ok)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "yes")

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, zerolog.WarnLevel, cfg.Level)
	assert.False(t, cfg.Timestamp)
	// not a valid bool, left as is
	assert.False(t, cfg.NoColor)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, DefaultConfig(ProfileTest))

	log.Debug().Str("root", "a").Msg("frameloop started")
	log.Trace().Msg("hidden")

	assert.Contains(t, buf.String(), "frameloop started")
	assert.Contains(t, buf.String(), "root=a")
	assert.NotContains(t, buf.String(), "hidden")
}
