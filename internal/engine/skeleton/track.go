// Package skeleton computes per-bone skinning transforms from a node hierarchy
// and keyframed animation clips.
//
// A frame runs Clock -> Wrap -> Evaluate: the clock yields elapsed seconds, Wrap
// turns them into looping clip ticks, and Evaluate walks the node tree writing
// each bone's final transform into the Registry. Everything but the per-frame
// final transforms is immutable once Load returns.
package skeleton

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// VectorKey is a translation or scale keyframe.
type VectorKey struct {
	Time  float32
	Value math.Vec3
}

// QuatKey is a rotation keyframe.
type QuatKey struct {
	Time  float32
	Value math.Quat
}

// KeyTime implements keyframe.
func (k VectorKey) KeyTime() float32 { return k.Time }

// KeyTime implements keyframe.
func (k QuatKey) KeyTime() float32 { return k.Time }

type keyframe interface {
	KeyTime() float32
}

// Channel holds the keyframe tracks of one animated node. Keys within each
// track must be in ascending time order; this is not checked.
type Channel struct {
	Node      string
	Positions []VectorKey
	Rotations []QuatKey
	Scales    []VectorKey
}

// Validate reports a track with no keys. Sampling such a track panics.
func (c *Channel) Validate() error {
	switch {
	case len(c.Positions) == 0:
		return fmt.Errorf("%w: %q positions", ErrEmptyTrack, c.Node)
	case len(c.Rotations) == 0:
		return fmt.Errorf("%w: %q rotations", ErrEmptyTrack, c.Node)
	case len(c.Scales) == 0:
		return fmt.Errorf("%w: %q scales", ErrEmptyTrack, c.Node)
	}
	return nil
}

// SamplePosition interpolates the translation track at t ticks.
func (c *Channel) SamplePosition(t float32) math.Vec3 {
	return sampleVector(c.Positions, t, c.Node, "position")
}

// SampleScale interpolates the scale track at t ticks.
func (c *Channel) SampleScale(t float32) math.Vec3 {
	return sampleVector(c.Scales, t, c.Node, "scale")
}

// SampleRotation interpolates the rotation track at t ticks along the shortest arc.
func (c *Channel) SampleRotation(t float32) math.Quat {
	keys := c.Rotations
	switch len(keys) {
	case 0:
		panic(fmt.Sprintf("skeleton: channel %q has no rotation keys", c.Node))
	case 1:
		return keys[0].Value
	}
	i, f := bracket(keys, t)
	return keys[i].Value.Slerp(keys[i+1].Value, f)
}

// LocalTransform returns translate * rotate * scale sampled at t ticks.
func (c *Channel) LocalTransform(t float32) math.Mat4 {
	return math.TRS(c.SamplePosition(t), c.SampleRotation(t), c.SampleScale(t))
}

func sampleVector(keys []VectorKey, t float32, node, kind string) math.Vec3 {
	switch len(keys) {
	case 0:
		panic(fmt.Sprintf("skeleton: channel %q has no %s keys", node, kind))
	case 1:
		return keys[0].Value
	}
	i, f := bracket(keys, t)
	return keys[i].Value.Lerp(keys[i+1].Value, f)
}

// bracket finds the key pair (i, i+1) around t and the blend factor between them.
// The pair is the first whose end key is later than t; past the last key it is
// the final pair. f is clamped to [0, 1] and is 0 for zero-length intervals.
// keys must hold at least two entries.
func bracket[K keyframe](keys []K, t float32) (int, float32) {
	i := len(keys) - 2
	for j := 1; j < len(keys); j++ {
		if keys[j].KeyTime() > t {
			i = j - 1
			break
		}
	}

	t0, t1 := keys[i].KeyTime(), keys[i+1].KeyTime()
	span := t1 - t0
	if span <= 0 {
		return i, 0
	}

	f := (t - t0) / span
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	return i, f
}
