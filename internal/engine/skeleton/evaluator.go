package skeleton

import "github.com/Faultbox/midgard-rig/pkg/math"

// Evaluate poses the hierarchy at t ticks and writes every bone's skinning
// transform into bones:
//
//	final = globalInverse * parentGlobal * local * offset
//
// Nodes animated by clip use the sampled translate*rotate*scale as local;
// others keep their static transform. A nil clip evaluates the bind pose.
// Nodes that are not bones are still traversed for their children.
// Only the final transforms in bones are written.
func Evaluate(clip *Clip, t float32, root *Node, globalInverse math.Mat4, bones *Registry) {
	e := evaluation{clip: clip, t: t, globalInverse: globalInverse, bones: bones}
	e.visit(root, math.Identity())
}

// EvaluateGlobals poses the hierarchy like Evaluate but records each node's
// global transform in dst instead of touching any registry.
func EvaluateGlobals(clip *Clip, t float32, root *Node, dst map[string]math.Mat4) {
	e := evaluation{clip: clip, t: t, globals: dst}
	e.visit(root, math.Identity())
}

type evaluation struct {
	clip          *Clip
	t             float32
	globalInverse math.Mat4
	bones         *Registry
	globals       map[string]math.Mat4
}

// visit is pre-order so a parent's global transform is final before any child uses it.
func (e *evaluation) visit(n *Node, parent math.Mat4) {
	local := n.Local
	if ch := e.clip.Channel(n.Name); ch != nil {
		local = ch.LocalTransform(e.t)
	}
	global := parent.Mul(local)

	if e.bones != nil {
		if i, ok := e.bones.Lookup(n.Name); ok {
			e.bones.SetFinal(i, e.globalInverse.Mul(global).Mul(e.bones.Offset(i)))
		}
	}
	if e.globals != nil {
		e.globals[n.Name] = global
	}

	for _, c := range n.Children {
		e.visit(c, global)
	}
}
