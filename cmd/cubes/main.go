// Command cubes renders spinning cubes on several independent surfaces sharing
// one frame loop. Each surface is configured with its own frameloop mode.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnatoleLucet/frameloop"
	"github.com/AnatoleLucet/frameloop/host"
	"github.com/AnatoleLucet/frameloop/internal/config"
	"github.com/AnatoleLucet/frameloop/internal/logging"
	"github.com/AnatoleLucet/frameloop/internal/raster"
	"github.com/AnatoleLucet/frameloop/internal/scene"
)

func main() {
	configPath := flag.String("config", filepath.Join("cmd", "cubes", "cubes.toml"), "path to the surfaces config")
	flag.Parse()

	log := logging.Configure(logging.ProfileRuntime)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok && os.Getenv(logging.EnvLogLevel) == "" {
		log = log.Level(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("cubes")
	}
}

type surface struct {
	cfg      config.Surface
	store    *frameloop.RootStore
	renderer *raster.Renderer
}

// run drives the surfaces until ctx is done or the configured duration elapsed.
// It returns the number of frames rendered per surface.
func run(ctx context.Context, cfg config.Config, log zerolog.Logger) (map[string]int, error) {
	ticker, err := host.NewTicker(cfg.FPS, host.WithLogger(log))
	if err != nil {
		return nil, err
	}

	loop := frameloop.New[string](ticker,
		frameloop.WithLogger(log),
		frameloop.WithErrorHandler(func(err error) {
			log.Warn().Err(err).Msg("frame failed")
		}),
	)

	surfaces := make([]*surface, 0, len(cfg.Surfaces))
	defer func() {
		for _, s := range surfaces {
			_ = s.renderer.Close()
		}
	}()

	for _, sc := range cfg.Surfaces {
		s, err := newSurface(sc, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("surface %s: %w", sc.Name, err)
		}
		surfaces = append(surfaces, s)

		loop.AddRoot(sc.Name, s.store)
		loop.Subscribe(sc.Name, func(frame frameloop.FrameContext) {
			frame.Scene.(*scene.Scene).Spin(frame.Delta)
		}, 0)
	}

	idle := 0
	loop.AddTail(func(ts time.Duration) {
		idle++
		log.Debug().Dur("at", ts).Int("count", idle).Msg("loop went idle")
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	for _, s := range surfaces {
		switch s.cfg.Frameloop {
		case frameloop.FrameloopDemand:
			wg.Add(1)
			go func() {
				defer wg.Done()
				every(ctx, s.cfg.InvalidateEvery, func() {
					loop.InvalidateFrames(s.cfg.InvalidateFrames, s.cfg.Name)
				})
			}()
		case frameloop.FrameloopNever:
			wg.Add(1)
			go func() {
				defer wg.Done()
				every(ctx, s.cfg.AdvanceEvery, func() {
					loop.AdvanceRoot(time.Since(start), s.cfg.Name)
				})
			}()
		}
	}

	// first frame of every surface, always surfaces keep the loop alive from there
	loop.Invalidate()

	err = ticker.Run(ctx)
	wg.Wait()

	frames := make(map[string]int, len(surfaces))
	for _, s := range surfaces {
		frames[s.cfg.Name] = s.renderer.Frames()
		log.Info().
			Str("surface", s.cfg.Name).
			Str("frameloop", string(s.cfg.Frameloop)).
			Int("frames", s.renderer.Frames()).
			Int("saved", len(s.renderer.Saved())).
			Msg("surface done")
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return frames, nil
	}
	return frames, err
}

func newSurface(sc config.Surface, cfg config.Config, log zerolog.Logger) (*surface, error) {
	renderer, err := raster.New(raster.Options{
		Name:      sc.Name,
		Width:     sc.Width,
		Height:    sc.Height,
		OutputDir: cfg.OutputDir,
		SaveEvery: cfg.SaveEvery,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	store := frameloop.NewRootStore(frameloop.RootOptions{
		Frameloop: sc.Frameloop,
		GL:        renderer,
		Scene:     scene.NewCubes(sc.Cubes, sc.Background),
		Camera:    scene.NewCamera(sc.Width, sc.Height),
		Size:      frameloop.Size{Width: sc.Width, Height: sc.Height},
	})

	return &surface{cfg: sc, store: store, renderer: renderer}, nil
}

func every(ctx context.Context, interval time.Duration, fn func()) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}
