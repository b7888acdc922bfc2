package formats

import (
	"fmt"

	"github.com/chewxy/math32"
)

// TubeRigOptions controls NewTubeRig.
type TubeRigOptions struct {
	Bones      int     // bones in the chain
	BoneLength float32 // length of each bone along +Y
	Radius     float32
	Rings      int     // vertex rings per bone
	Sides      int     // vertices per ring
	BendAngle  float32 // peak bend per bone in radians
	Ticks      float32 // clip duration in ticks
	TicksPerS  float32 // 0 leaves the rate unset
}

// DefaultTubeRigOptions returns a four-bone tube that sways back and forth.
func DefaultTubeRigOptions() TubeRigOptions {
	return TubeRigOptions{
		Bones:      4,
		BoneLength: 1,
		Radius:     0.25,
		Rings:      4,
		Sides:      12,
		BendAngle:  math32.Pi / 8,
		Ticks:      48,
		TicksPerS:  24,
	}
}

// NewTubeRig generates a skinned cylinder driven by a chain of bones, with one
// looping bend animation. It is used as a demo asset and as a test fixture.
func NewTubeRig(opts TubeRigOptions) *Rig {
	if opts.Bones < 1 {
		opts.Bones = 1
	}
	if opts.Rings < 1 {
		opts.Rings = 1
	}
	if opts.Sides < 3 {
		opts.Sides = 3
	}

	boneName := func(i int) string { return fmt.Sprintf("Bone%d", i) }

	// Scene -> Armature -> Bone0 -> Bone1 -> ... ; Scene -> TubeMesh
	chain := &RigNode{Name: boneName(opts.Bones - 1)}
	chain.Transform.Translation = &[3]float32{0, opts.BoneLength, 0}
	for i := opts.Bones - 2; i >= 0; i-- {
		parent := RigNode{Name: boneName(i), Children: []RigNode{*chain}}
		if i > 0 {
			parent.Transform.Translation = &[3]float32{0, opts.BoneLength, 0}
		}
		chain = &parent
	}
	if opts.Bones == 1 {
		chain.Transform.Translation = nil
	}
	root := &RigNode{
		Name: "Scene",
		Children: []RigNode{
			{Name: "Armature", Children: []RigNode{*chain}},
			{Name: "TubeMesh"},
		},
	}

	mesh := RigMesh{
		Name: "Tube",
		Material: RigMaterial{
			Ambient:   [3]float32{0.15, 0.12, 0.1},
			Diffuse:   [3]float32{0.8, 0.55, 0.3},
			Specular:  [3]float32{0.4, 0.4, 0.4},
			Shininess: 32,
		},
	}

	totalRings := opts.Bones*opts.Rings + 1
	ringStep := opts.BoneLength / float32(opts.Rings)
	for r := 0; r < totalRings; r++ {
		y := float32(r) * ringStep
		for s := 0; s < opts.Sides; s++ {
			sin, cos := math32.Sincos(2 * math32.Pi * float32(s) / float32(opts.Sides))
			mesh.Positions = append(mesh.Positions, [3]float32{cos * opts.Radius, y, sin * opts.Radius})
			mesh.Normals = append(mesh.Normals, [3]float32{cos, 0, sin})
			mesh.TexCoords = append(mesh.TexCoords, [2]float32{float32(s) / float32(opts.Sides), float32(r) / float32(totalRings-1)})
		}
	}
	for r := 0; r < totalRings-1; r++ {
		for s := 0; s < opts.Sides; s++ {
			a := uint32(r*opts.Sides + s)
			b := uint32(r*opts.Sides + (s+1)%opts.Sides)
			c := a + uint32(opts.Sides)
			d := b + uint32(opts.Sides)
			mesh.Indices = append(mesh.Indices, a, c, b, b, c, d)
		}
	}

	mesh.Bones = make([]RigBone, opts.Bones)
	for i := range mesh.Bones {
		mesh.Bones[i] = RigBone{
			Name:   boneName(i),
			Offset: RigTransform{Translation: &[3]float32{0, -float32(i) * opts.BoneLength, 0}},
		}
	}
	for v, p := range mesh.Positions {
		for bone, w := range tubeWeights(p[1]/opts.BoneLength, opts.Bones) {
			if w > 0 {
				mesh.Bones[bone].Weights = append(mesh.Bones[bone].Weights, RigWeight{Vertex: v, Weight: w})
			}
		}
	}

	anim := RigAnimation{Name: "bend", TicksPerSecond: opts.TicksPerS, Duration: opts.Ticks}
	quarter := opts.Ticks / 4
	for i := 0; i < opts.Bones; i++ {
		bind := [3]float32{0, opts.BoneLength, 0}
		if i == 0 {
			bind = [3]float32{}
		}
		ch := RigChannel{
			Node:      boneName(i),
			Positions: []RigVectorKey{{Time: 0, Value: bind}},
			Scales:    []RigVectorKey{{Time: 0, Value: [3]float32{1, 1, 1}}},
		}
		for k, sign := range []float32{0, 1, 0, -1, 0} {
			ch.Rotations = append(ch.Rotations, RigQuatKey{
				Time:  float32(k) * quarter,
				Value: axisAngleZ(sign * opts.BendAngle),
			})
		}
		anim.Channels = append(anim.Channels, ch)
	}

	return &Rig{
		Name:       "tube",
		Root:       root,
		Meshes:     []RigMesh{mesh},
		Animations: []RigAnimation{anim},
	}
}

// tubeWeights blends each vertex between the bone it sits on and the nearest
// neighbouring bone, so joints bend smoothly.
func tubeWeights(u float32, bones int) map[int]float32 {
	b := int(u)
	if b >= bones {
		b = bones - 1
	}
	f := u - float32(b)
	switch {
	case f > 0.5 && b+1 < bones:
		return map[int]float32{b: 1.5 - f, b + 1: f - 0.5}
	case f < 0.5 && b > 0:
		return map[int]float32{b: 0.5 + f, b - 1: 0.5 - f}
	default:
		return map[int]float32{b: 1}
	}
}

func axisAngleZ(angle float32) [4]float32 {
	s, c := math32.Sincos(angle / 2)
	return [4]float32{0, 0, s, c}
}
