package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/frameloop"
	"github.com/AnatoleLucet/frameloop/internal/config"
	"github.com/AnatoleLucet/frameloop/internal/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	surface := func(name string, mode frameloop.Frameloop) config.Surface {
		return config.Surface{
			Name:             name,
			Frameloop:        mode,
			Width:            32,
			Height:           32,
			Cubes:            1,
			InvalidateEvery:  50 * time.Millisecond,
			InvalidateFrames: 2,
			AdvanceEvery:     100 * time.Millisecond,
		}
	}

	return config.Config{
		FPS:       100,
		Duration:  450 * time.Millisecond,
		OutputDir: t.TempDir(),
		SaveEvery: 10,
		Surfaces: []config.Surface{
			surface("always", frameloop.FrameloopAlways),
			surface("demand", frameloop.FrameloopDemand),
			surface("never", frameloop.FrameloopNever),
		},
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, config.Validate(cfg))

	log := logging.New(os.Stderr, logging.DefaultConfig(logging.ProfileTest)).Level(zerolog.InfoLevel)

	frames, err := run(context.Background(), cfg, log)
	require.NoError(t, err)

	// always renders on every tick, demand only when invalidated, never only when advanced
	assert.Greater(t, frames["always"], frames["demand"])
	assert.Positive(t, frames["demand"])
	assert.Positive(t, frames["never"])
	assert.LessOrEqual(t, frames["never"], 4)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
