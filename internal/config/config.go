// Package config loads the surfaces driven by the cubes demo.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AnatoleLucet/frameloop/internal"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	FPS       int
	Duration  time.Duration
	OutputDir string
	SaveEvery int
	LogLevel  string
	Surfaces  []Surface
}

type Surface struct {
	Name       string
	Frameloop  internal.Frameloop
	Width      int
	Height     int
	Cubes      int
	Background string

	// demand surfaces
	InvalidateEvery  time.Duration
	InvalidateFrames int

	// never surfaces
	AdvanceEvery time.Duration
}

type fileConfig struct {
	FPS       int           `toml:"fps"`
	Duration  string        `toml:"duration"`
	OutputDir string        `toml:"output_dir"`
	SaveEvery int           `toml:"save_every"`
	LogLevel  string        `toml:"log_level"`
	Surfaces  []fileSurface `toml:"surface"`
}

type fileSurface struct {
	Name             string `toml:"name"`
	Frameloop        string `toml:"frameloop"`
	Width            int    `toml:"width"`
	Height           int    `toml:"height"`
	Cubes            int    `toml:"cubes"`
	Background       string `toml:"background"`
	InvalidateEvery  string `toml:"invalidate_every"`
	InvalidateFrames int    `toml:"invalidate_frames"`
	AdvanceEvery     string `toml:"advance_every"`
}

func Default() Config {
	return Config{
		FPS:       60,
		Duration:  3 * time.Second,
		OutputDir: "frames",
		SaveEvery: 30,
		LogLevel:  "info",
	}
}

func defaultSurface(name string) Surface {
	return Surface{
		Name:             name,
		Frameloop:        internal.FrameloopAlways,
		Width:            256,
		Height:           256,
		Cubes:            2,
		Background:       "#87ceeb",
		InvalidateEvery:  500 * time.Millisecond,
		InvalidateFrames: 1,
		AdvanceEvery:     time.Second,
	}
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}

	cfg, err := fromFile(raw, meta)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document on top of the defaults.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()

	if meta.IsDefined("fps") {
		cfg.FPS = raw.FPS
	}
	if meta.IsDefined("duration") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Duration))
		if err != nil {
			return Config{}, fmt.Errorf("parse duration: %w", err)
		}
		cfg.Duration = d
	}
	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("save_every") {
		cfg.SaveEvery = raw.SaveEvery
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	for i, fs := range raw.Surfaces {
		surface, err := surfaceFromFile(fs, i)
		if err != nil {
			return Config{}, fmt.Errorf("surface[%d]: %w", i, err)
		}
		cfg.Surfaces = append(cfg.Surfaces, surface)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func surfaceFromFile(fs fileSurface, index int) (Surface, error) {
	name := strings.TrimSpace(fs.Name)
	if name == "" {
		name = fmt.Sprintf("surface-%d", index)
	}
	s := defaultSurface(name)

	mode, err := internal.ParseFrameloop(fs.Frameloop)
	if err != nil {
		return Surface{}, err
	}
	s.Frameloop = mode

	if fs.Width != 0 {
		s.Width = fs.Width
	}
	if fs.Height != 0 {
		s.Height = fs.Height
	}
	if fs.Cubes != 0 {
		s.Cubes = fs.Cubes
	}
	if bg := strings.TrimSpace(fs.Background); bg != "" {
		s.Background = bg
	}
	if fs.InvalidateFrames != 0 {
		s.InvalidateFrames = fs.InvalidateFrames
	}

	if fs.InvalidateEvery != "" {
		if s.InvalidateEvery, err = time.ParseDuration(strings.TrimSpace(fs.InvalidateEvery)); err != nil {
			return Surface{}, fmt.Errorf("parse invalidate_every: %w", err)
		}
	}
	if fs.AdvanceEvery != "" {
		if s.AdvanceEvery, err = time.ParseDuration(strings.TrimSpace(fs.AdvanceEvery)); err != nil {
			return Surface{}, fmt.Errorf("parse advance_every: %w", err)
		}
	}

	return s, nil
}

func Validate(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	if cfg.SaveEvery < 0 {
		return fmt.Errorf("%w: save_every must not be negative", ErrInvalidConfig)
	}
	if len(cfg.Surfaces) == 0 {
		return fmt.Errorf("%w: at least one surface is required", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(cfg.Surfaces))
	for i, s := range cfg.Surfaces {
		if seen[s.Name] {
			return fmt.Errorf("%w: surface[%d] duplicate name %q", ErrInvalidConfig, i, s.Name)
		}
		seen[s.Name] = true

		if err := ValidateSurface(s); err != nil {
			return fmt.Errorf("surface[%d] %s: %w", i, s.Name, err)
		}
	}
	return nil
}

func ValidateSurface(s Surface) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrInvalidConfig, s.Width, s.Height)
	}
	if s.Cubes < 0 {
		return fmt.Errorf("%w: cubes must not be negative", ErrInvalidConfig)
	}
	switch s.Frameloop {
	case internal.FrameloopDemand:
		if s.InvalidateEvery <= 0 {
			return fmt.Errorf("%w: invalidate_every must be positive", ErrInvalidConfig)
		}
		if s.InvalidateFrames <= 0 || s.InvalidateFrames > internal.MaxFrames {
			return fmt.Errorf("%w: invalidate_frames must be in [1, %d]", ErrInvalidConfig, internal.MaxFrames)
		}
	case internal.FrameloopNever:
		if s.AdvanceEvery <= 0 {
			return fmt.Errorf("%w: advance_every must be positive", ErrInvalidConfig)
		}
	}
	return nil
}
