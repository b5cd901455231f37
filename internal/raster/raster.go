// Package raster renders cube scenes in software with gg and saves frames as PNG.
package raster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"

	"github.com/AnatoleLucet/frameloop/internal/scene"
)

var (
	ErrUnsupportedScene  = errors.New("raster: unsupported scene")
	ErrUnsupportedCamera = errors.New("raster: unsupported camera")
	ErrClosed            = errors.New("raster: renderer is closed")
)

type Options struct {
	Name   string
	Width  int
	Height int

	// directory frames are written to, frames are not saved if empty
	OutputDir string
	// save one frame out of SaveEvery, 0 saves none
	SaveEvery int

	LineWidth float64
	Logger    zerolog.Logger
}

// Renderer draws the wireframe of a scene.Scene through a scene.Camera.
type Renderer struct {
	opts   Options
	ctx    *gg.Context
	frames int
	saved  []string
	closed bool
}

func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = 2
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("raster: create output dir: %w", err)
		}
	}

	return &Renderer{
		opts: opts,
		ctx:  gg.NewContext(opts.Width, opts.Height),
	}, nil
}

// Frames returns the number of frames rendered so far.
func (r *Renderer) Frames() int {
	return r.frames
}

// Saved returns the paths of the frames written so far.
func (r *Renderer) Saved() []string {
	return r.saved
}

// Context exposes the drawing context holding the last rendered frame.
func (r *Renderer) Context() *gg.Context {
	return r.ctx
}

func (r *Renderer) Render(sc, camera any) error {
	if r.closed {
		return ErrClosed
	}

	s, ok := sc.(*scene.Scene)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedScene, sc)
	}
	cam, ok := camera.(*scene.Camera)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedCamera, camera)
	}

	r.draw(s, cam)
	r.frames++

	if r.opts.OutputDir != "" && r.opts.SaveEvery > 0 && r.frames%r.opts.SaveEvery == 0 {
		return r.save()
	}
	return nil
}

func (r *Renderer) draw(s *scene.Scene, cam *scene.Camera) {
	w, h := r.opts.Width, r.opts.Height

	bg := gg.White
	if s.Background != "" {
		bg = gg.Hex(s.Background)
	}
	r.ctx.ClearWithColor(bg)

	vp := cam.ViewProjection()
	r.ctx.SetLineWidth(r.opts.LineWidth)

	for _, cube := range s.Cubes {
		corners := cube.Corners()

		var points [8][2]float64
		var visible [8]bool
		for i, c := range corners {
			x, y, ok := cam.Project(vp, c, w, h)
			points[i] = [2]float64{x, y}
			visible[i] = ok
		}

		r.ctx.SetColor(gg.Hex(cube.Color).Color())
		for _, edge := range scene.CubeEdges {
			a, b := edge[0], edge[1]
			if !visible[a] || !visible[b] {
				continue
			}
			r.ctx.DrawLine(points[a][0], points[a][1], points[b][0], points[b][1])
		}
		_ = r.ctx.Stroke()
	}
}

func (r *Renderer) save() error {
	name := r.opts.Name
	if name == "" {
		name = "frame"
	}
	path := filepath.Join(r.opts.OutputDir, fmt.Sprintf("%s-%05d.png", name, r.frames))

	if err := r.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	r.saved = append(r.saved, path)

	r.opts.Logger.Debug().Str("surface", name).Str("path", path).Msg("frame saved")
	return nil
}

func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.ctx.Close()
}
