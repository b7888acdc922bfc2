package skeleton

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

func registryOf(names ...string) *Registry {
	r := NewRegistry()
	for _, n := range names {
		r.Register(n)
	}
	return r
}

func TestEvaluate_StaticTwoBoneChainIsIdentity(t *testing.T) {
	root := NewNode("Root", math.Identity())
	root.AddChild(NewNode("Child", math.Identity()))
	bones := registryOf("Root", "Child")

	Evaluate(nil, 0, root, math.Identity(), bones)

	assert.Equal(t, math.Identity(), bones.Final(0))
	assert.Equal(t, math.Identity(), bones.Final(1))
}

func TestEvaluate_GlobalInverseApplied(t *testing.T) {
	root := NewNode("Root", math.Translate(math.V3(0, 0, 5)))
	root.AddChild(NewNode("Child", math.Identity()))
	bones := registryOf("Root", "Child")

	Evaluate(nil, 0, root, root.Local.Inverse(), bones)

	assert.True(t, bones.Final(0).ApproxEqual(math.Identity(), 1e-6))
	assert.True(t, bones.Final(1).ApproxEqual(math.Identity(), 1e-6))
}

func TestEvaluate_Composition(t *testing.T) {
	// Root -> A -> B, where only B is a bone with a non-trivial offset.
	root := NewNode("Root", math.Translate(math.V3(1, 0, 0)))
	a := root.AddChild(NewNode("A", math.Scale(math.V3(2, 2, 2))))
	a.AddChild(NewNode("B", math.Translate(math.V3(0, 3, 0))))

	bones := NewRegistry()
	b := bones.Register("B")
	offset := math.Translate(math.V3(0, -6, 0))
	bones.SetOffset(b, offset)

	Evaluate(nil, 0, root, math.Identity(), bones)

	want := root.Local.Mul(a.Local).Mul(a.Children[0].Local).Mul(offset)
	assert.True(t, bones.Final(b).ApproxEqual(want, 1e-6))
	assert.Equal(t, math.V3(1, 0, 0), bones.Final(b).TransformPoint(math.V3(0, 3, 0)))

	// Moving the root moves every descendant bone.
	before := bones.Final(b)
	root.Local = math.Translate(math.V3(-4, 0, 0))
	Evaluate(nil, 0, root, math.Identity(), bones)
	assert.NotEqual(t, before, bones.Final(b))
	assert.Equal(t, math.V3(-4, 0, 0), bones.Final(b).TransformPoint(math.V3(0, 3, 0)))
}

func TestEvaluate_ChannelReplacesLocal(t *testing.T) {
	root := NewNode("Root", math.Identity())
	spine := root.AddChild(NewNode("Spine", math.Translate(math.V3(9, 9, 9))))
	spine.AddChild(NewNode("Head", math.Translate(math.V3(0, 1, 0))))

	clip, err := NewClip("turn", 0, 10, []Channel{{
		Node:      "Spine",
		Positions: []VectorKey{{Time: 0}},
		Rotations: []QuatKey{
			{Time: 0, Value: math.QuatIdentity()},
			{Time: 10, Value: math.QuatFromAxisAngle(math.V3(0, 0, 1), math32.Pi/2)},
		},
		Scales: []VectorKey{{Time: 0, Value: math.V3(1, 1, 1)}},
	}})
	require.NoError(t, err)

	bones := registryOf("Spine", "Head")
	Evaluate(clip, 10, root, math.Identity(), bones)

	// The static (9, 9, 9) translation is gone; Head rotates about Z with Spine.
	assert.InDelta(t, 0, bones.Final(0).Translation().Length(), 1e-6)
	head := bones.Final(1).Translation()
	assert.InDelta(t, -1, head.X, 1e-5)
	assert.InDelta(t, 0, head.Y, 1e-5)
}

func TestEvaluate_Deterministic(t *testing.T) {
	m := loadTube(t)

	Evaluate(m.Clip, 17.3, m.Root, m.GlobalInverse, m.Bones)
	first := m.Bones.CopyFinals(nil)

	Evaluate(m.Clip, 3, m.Root, m.GlobalInverse, m.Bones)
	Evaluate(m.Clip, 17.3, m.Root, m.GlobalInverse, m.Bones)
	assert.Equal(t, first, m.Bones.Finals())
}

func TestEvaluate_NonBoneNodesOnlyPropagate(t *testing.T) {
	root := NewNode("Root", math.Translate(math.V3(0, 2, 0)))
	root.AddChild(NewNode("Leaf", math.Identity()))
	bones := registryOf("Leaf")

	Evaluate(nil, 0, root, math.Identity(), bones)

	assert.Equal(t, 1, bones.Count())
	assert.Equal(t, math.V3(0, 2, 0), bones.Final(0).Translation())
}

func TestEvaluateGlobals(t *testing.T) {
	root := NewNode("Root", math.Translate(math.V3(1, 0, 0)))
	a := root.AddChild(NewNode("A", math.Translate(math.V3(0, 1, 0))))
	a.AddChild(NewNode("B", math.Translate(math.V3(0, 0, 1))))

	globals := make(map[string]math.Mat4)
	EvaluateGlobals(nil, 0, root, globals)

	require.Len(t, globals, 3)
	assert.Equal(t, math.V3(1, 0, 0), globals["Root"].Translation())
	assert.Equal(t, math.V3(1, 1, 0), globals["A"].Translation())
	assert.Equal(t, math.V3(1, 1, 1), globals["B"].Translation())
}
