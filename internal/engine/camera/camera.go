// Package camera provides the viewer's fixed framing camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// FramingCamera looks at a center point from a fixed yaw and pitch.
// It is positioned once to fit the model and does not take user input.
type FramingCamera struct {
	Center   math.Vec3
	Distance float32
	Yaw      float32 // radians around +Y
	Pitch    float32 // radians above the horizon

	FovY float32 // radians
	Near float32
	Far  float32
}

// NewFramingCamera creates a camera with default angles looking at the origin.
func NewFramingCamera() *FramingCamera {
	return &FramingCamera{
		Distance: 5,
		Yaw:      0.6,
		Pitch:    0.3,
		FovY:     math32.Pi / 4,
		Near:     0.05,
		Far:      500,
	}
}

// Position returns the camera position in world space.
func (c *FramingCamera) Position() math.Vec3 {
	sinP, cosP := math32.Sincos(c.Pitch)
	sinY, cosY := math32.Sincos(c.Yaw)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cosP * sinY,
		Y: c.Distance * sinP,
		Z: c.Distance * cosP * cosY,
	})
}

// Forward returns the unit view direction.
func (c *FramingCamera) Forward() math.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FramingCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (c *FramingCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// FitToBounds centers the camera on the box and backs off until the box's
// bounding sphere fits the vertical field of view.
func (c *FramingCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = radius / math32.Sin(c.FovY/2)
	c.Far = c.Distance + radius*4
	c.Near = c.Distance / 1000
}

// Bounds returns the axis-aligned box around points. Empty input yields a
// zero box.
func Bounds(points []math.Vec3) (lo, hi math.Vec3) {
	if len(points) == 0 {
		return
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = math32.Min(lo.X, p.X), math32.Max(hi.X, p.X)
		lo.Y, hi.Y = math32.Min(lo.Y, p.Y), math32.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math32.Min(lo.Z, p.Z), math32.Max(hi.Z, p.Z)
	}
	return lo, hi
}
