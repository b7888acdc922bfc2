package skeleton

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

var yAxis = math.Vec3{Y: 1}

func TestSample_SingleKeyIsConstant(t *testing.T) {
	ch := Channel{
		Node:      "Hip",
		Positions: []VectorKey{{Time: 3, Value: math.V3(1, 2, 3)}},
		Rotations: []QuatKey{{Time: 3, Value: math.QuatFromAxisAngle(yAxis, 0.5)}},
		Scales:    []VectorKey{{Time: 3, Value: math.V3(2, 2, 2)}},
	}
	for _, tm := range []float32{0, 2.9, 3, 7.5, 1000} {
		assert.Equal(t, math.V3(1, 2, 3), ch.SamplePosition(tm), "t=%v", tm)
		assert.Equal(t, ch.Rotations[0].Value, ch.SampleRotation(tm), "t=%v", tm)
		assert.Equal(t, math.V3(2, 2, 2), ch.SampleScale(tm), "t=%v", tm)
	}
}

func TestSamplePosition_LinearWithinBracket(t *testing.T) {
	ch := Channel{Positions: []VectorKey{
		{Time: 0, Value: math.V3(0, 0, 0)},
		{Time: 10, Value: math.V3(10, -20, 5)},
		{Time: 20, Value: math.V3(0, 0, 0)},
	}}

	assert.Equal(t, math.V3(5, -10, 2.5), ch.SamplePosition(5))

	prev := ch.SamplePosition(0)
	for tm := float32(0.5); tm < 10; tm += 0.5 {
		cur := ch.SamplePosition(tm)
		assert.GreaterOrEqual(t, cur.X, prev.X, "t=%v", tm)
		assert.LessOrEqual(t, cur.Y, prev.Y, "t=%v", tm)
		assert.GreaterOrEqual(t, cur.Z, prev.Z, "t=%v", tm)
		prev = cur
	}
}

func TestSampleRotation_UnitLength(t *testing.T) {
	ch := Channel{Rotations: []QuatKey{
		{Time: 0, Value: math.QuatIdentity()},
		{Time: 4, Value: math.QuatFromAxisAngle(yAxis, 2)},
		{Time: 8, Value: math.QuatFromAxisAngle(math.V3(1, 0, 0), -3)},
		{Time: 9, Value: math.Quat{X: 0.1, Y: 0.2, Z: 0.3, W: 0.9}.Normalize()},
	}}
	for tm := float32(0); tm <= 9; tm += 0.125 {
		q := ch.SampleRotation(tm)
		assert.InDelta(t, 1.0, q.Length(), 1e-5, "t=%v", tm)
	}
}

func TestSampleRotation_Spine45(t *testing.T) {
	spine := Channel{
		Node:      "Spine",
		Positions: []VectorKey{{Time: 0}},
		Rotations: []QuatKey{
			{Time: 0, Value: math.QuatIdentity()},
			{Time: 10, Value: math.QuatFromAxisAngle(yAxis, math32.Pi/2)},
		},
		Scales: []VectorKey{{Time: 0, Value: math.V3(1, 1, 1)}},
	}
	require.NoError(t, spine.Validate())

	q := spine.SampleRotation(5)
	assert.InDelta(t, math32.Pi/4, q.Angle(), 1e-5)

	// +X swings toward -Z under a positive rotation about +Y.
	x := spine.LocalTransform(5).TransformDirection(math.V3(1, 0, 0))
	half := math32.Sqrt2 / 2
	assert.InDelta(t, half, x.X, 1e-5)
	assert.InDelta(t, 0, x.Y, 1e-5)
	assert.InDelta(t, -half, x.Z, 1e-5)
}

func TestSample_LastKeyBoundary(t *testing.T) {
	ch := Channel{
		Positions: []VectorKey{
			{Time: 0, Value: math.V3(0, 0, 0)},
			{Time: 5, Value: math.V3(1, 0, 0)},
			{Time: 10, Value: math.V3(2, 0, 0)},
		},
		Rotations: []QuatKey{
			{Time: 0, Value: math.QuatIdentity()},
			{Time: 10, Value: math.QuatFromAxisAngle(yAxis, 1)},
		},
	}

	eps := float32(1e-4)
	assert.InDelta(t, 2, ch.SamplePosition(10-eps).X, 1e-3)
	// At and past the last key the final pair is used with f clamped to 1.
	assert.Equal(t, math.V3(2, 0, 0), ch.SamplePosition(10))
	assert.Equal(t, math.V3(2, 0, 0), ch.SamplePosition(12))
	assert.InDelta(t, 1, ch.SampleRotation(10-eps).Angle(), 1e-3)
	assert.InDelta(t, 1, ch.SampleRotation(11).Angle(), 1e-5)
}

func TestBracket(t *testing.T) {
	keys := []VectorKey{{Time: 0}, {Time: 2}, {Time: 2}, {Time: 6}}

	tests := []struct {
		name  string
		t     float32
		wantI int
		wantF float32
	}{
		{"start", 0, 0, 0},
		{"first interval", 1, 0, 0.5},
		{"zero length interval skipped", 2, 2, 0},
		{"last interval", 4, 2, 0.5},
		{"past end", 9, 2, 1},
		{"before start", -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, f := bracket(keys, tt.t)
			assert.Equal(t, tt.wantI, i)
			assert.Equal(t, tt.wantF, f)
		})
	}

	i, f := bracket([]VectorKey{{Time: 3}, {Time: 3}}, 3)
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), f, "zero length interval")
}

func TestChannelValidate(t *testing.T) {
	full := Channel{
		Node:      "A",
		Positions: []VectorKey{{}},
		Rotations: []QuatKey{{Value: math.QuatIdentity()}},
		Scales:    []VectorKey{{Value: math.V3(1, 1, 1)}},
	}
	require.NoError(t, full.Validate())

	noRot := full
	noRot.Rotations = nil
	assert.ErrorIs(t, noRot.Validate(), ErrEmptyTrack)

	assert.Panics(t, func() { noRot.SampleRotation(0) })
	assert.Panics(t, func() { (&Channel{}).SamplePosition(0) })
}
