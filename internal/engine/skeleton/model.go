package skeleton

import "github.com/Faultbox/midgard-rig/pkg/math"

// Model is a loaded rig: hierarchy, bones, meshes and at most one clip.
// It is owned by the render thread; use a Palette to hand finals to others.
type Model struct {
	Name   string
	Root   *Node
	Bones  *Registry
	Meshes []Mesh

	// Clip is the first animation declared by the source, or nil.
	Clip *Clip
	// Animated is set at load when the source declared any animation.
	Animated bool
	// GlobalInverse undoes the root's load-time transform so bone results
	// share the renderer's world origin.
	GlobalInverse math.Mat4

	Clock *Clock
}

// Update evaluates the pose at the model clock's current time and returns
// the clip time in ticks.
func (m *Model) Update() float32 {
	return m.UpdateAt(m.Clock.Elapsed())
}

// UpdateAt evaluates the pose for the given elapsed playback seconds and
// returns the clip time in ticks. Static models are posed in bind pose.
func (m *Model) UpdateAt(elapsedSeconds float32) float32 {
	if !m.Animated || m.Clip == nil {
		Evaluate(nil, 0, m.Root, m.GlobalInverse, m.Bones)
		return 0
	}
	t := m.Clip.TimeAt(elapsedSeconds)
	Evaluate(m.Clip, t, m.Root, m.GlobalInverse, m.Bones)
	return t
}

// BoneTransforms returns the dense final transform array indexed by bone
// index, as last computed by Update.
func (m *Model) BoneTransforms() []math.Mat4 {
	return m.Bones.Finals()
}

// NodeGlobals returns each node's global transform at t ticks, with
// GlobalInverse applied, for drawing the skeleton itself.
func (m *Model) NodeGlobals(t float32) map[string]math.Mat4 {
	globals := make(map[string]math.Mat4, m.Root.Count())
	clip := m.Clip
	if !m.Animated {
		clip = nil
	}
	EvaluateGlobals(clip, t, m.Root, globals)
	for name, g := range globals {
		globals[name] = m.GlobalInverse.Mul(g)
	}
	return globals
}

// BoneSegments appends a parent-to-child segment, as two points, for every
// bone whose parent node is also a bone. Positions are recovered from finals
// (finals[i] * inverse(offset[i])), so only immutable model data is read and
// finals may come from a Palette snapshot on another goroutine.
func (m *Model) BoneSegments(finals []math.Mat4, dst []math.Vec3) []math.Vec3 {
	dst = dst[:0]
	position := func(i int) math.Vec3 {
		return finals[i].Mul(m.Bones.Offset(i).Inverse()).Translation()
	}
	m.Root.Walk(func(n *Node, _ int) {
		parent, ok := m.Bones.Lookup(n.Name)
		if !ok || parent >= len(finals) {
			return
		}
		for _, c := range n.Children {
			if child, ok := m.Bones.Lookup(c.Name); ok && child < len(finals) {
				dst = append(dst, position(parent), position(child))
			}
		}
	})
	return dst
}
