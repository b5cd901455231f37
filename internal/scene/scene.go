// Package scene holds the content rendered by the cubes demo: a few spinning
// cubes seen through a perspective camera.
package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// radians per second around each axis
const spinSpeed = 0.6

type Cube struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Size     float64
	Color    string
	Hover    string
}

// Model returns the model matrix of the cube.
func (c *Cube) Model() mgl64.Mat4 {
	return mgl64.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z()).
		Mul4(mgl64.HomogRotate3DX(c.Rotation.X())).
		Mul4(mgl64.HomogRotate3DY(c.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(c.Rotation.Z())).
		Mul4(mgl64.Scale3D(c.Size, c.Size, c.Size))
}

type Scene struct {
	Background string
	Cubes      []*Cube
}

// NewCubes lays n cubes out on a row centered on the origin.
func NewCubes(n int, background string) *Scene {
	s := &Scene{Background: background}

	for i := 0; i < n; i++ {
		x := (float64(i) - float64(n-1)/2) * 3
		s.Cubes = append(s.Cubes, &Cube{
			Position: mgl64.Vec3{x, 0, 0},
			Size:     1,
			Color:    "#8b0000",
			Hover:    "#daa520",
		})
	}

	return s
}

// Spin rotates every cube by the time elapsed since the previous frame.
func (s *Scene) Spin(delta time.Duration) {
	step := spinSpeed * delta.Seconds()
	for _, c := range s.Cubes {
		c.Rotation = c.Rotation.Add(mgl64.Vec3{step, step, step})
		for i := range 3 {
			c.Rotation[i] = math.Mod(c.Rotation[i], 2*math.Pi)
		}
	}
}

// Camera is a perspective camera looking at Target.
type Camera struct {
	Fov      float64 // vertical, in degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Fov:      75,
		Aspect:   float64(width) / float64(height),
		Near:     0.1,
		Far:      1000,
		Position: mgl64.Vec3{0, 0, 5},
	}
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Position, c.Target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// Project maps a world position to pixel coordinates of a width x height viewport.
// ok is false for points behind the camera.
func (c *Camera) Project(m mgl64.Mat4, p mgl64.Vec3, width, height int) (x, y float64, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}

	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float64(width)
	y = (1 - ndc.Y()) / 2 * float64(height)

	return x, y, true
}

var cubeCorners = [8]mgl64.Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

// CubeEdges lists the corner indices of the twelve edges of a cube.
var CubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Corners returns the world positions of the cube's corners.
func (c *Cube) Corners() [8]mgl64.Vec3 {
	model := c.Model()

	var out [8]mgl64.Vec3
	for i, corner := range cubeCorners {
		out[i] = model.Mul4x1(corner.Vec4(1)).Vec3()
	}
	return out
}
