package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]math.Vec3{{X: 1, Y: -2}, {X: -1, Z: 3}, {Y: 4}})
	assert.Equal(t, math.V3(-1, -2, 0), lo)
	assert.Equal(t, math.V3(1, 4, 3), hi)

	lo, hi = Bounds(nil)
	assert.Equal(t, math.Vec3{}, lo)
	assert.Equal(t, math.Vec3{}, hi)
}

func TestFitToBounds(t *testing.T) {
	c := NewFramingCamera()
	c.FitToBounds(math.V3(-1, 0, -1), math.V3(1, 4, 1))

	assert.Equal(t, math.V3(0, 2, 0), c.Center)
	assert.InDelta(t, c.Distance, c.Position().Distance(c.Center), 1e-4)
	assert.Greater(t, c.Far, c.Distance)
	assert.InDelta(t, 1, c.Forward().Length(), 1e-5)

	// The view matrix maps the center onto the -Z axis at Distance.
	p := c.ViewMatrix().TransformPoint(c.Center)
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 0, p.Y, 1e-4)
	assert.InDelta(t, -c.Distance, p.Z, 1e-3)
}
