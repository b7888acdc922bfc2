package skeleton

import "github.com/Faultbox/midgard-rig/pkg/math"

// MaxInfluences is the number of bones that may affect one vertex.
const MaxInfluences = 4

// VertexBoneBinding lists up to MaxInfluences (bone, weight) pairs for a vertex.
// Slots fill in the order weights are added. Weights are stored as given and
// are not normalized; they need not sum to 1.
type VertexBoneBinding struct {
	IDs     [MaxInfluences]int32
	Weights [MaxInfluences]float32
}

// Add stores the pair in the first free slot. A slot is free while its weight
// is zero, so zero weights are accepted and ignored. Returns false when all
// slots are taken.
func (b *VertexBoneBinding) Add(bone int32, weight float32) bool {
	if weight == 0 {
		return true
	}
	for i := range b.Weights {
		if b.Weights[i] == 0 {
			b.IDs[i] = bone
			b.Weights[i] = weight
			return true
		}
	}
	return false
}

// Influences returns the number of occupied slots.
func (b VertexBoneBinding) Influences() int {
	n := 0
	for _, w := range b.Weights {
		if w != 0 {
			n++
		}
	}
	return n
}

// Material is a mesh's flat lighting material.
type Material struct {
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
}

// Mesh is a triangle mesh in bind pose with per-vertex bone bindings.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords [][2]float32
	Indices   []uint32
	Bindings  []VertexBoneBinding
	Material  Material
}

// Skinned reports whether any vertex is bound to a bone.
func (m *Mesh) Skinned() bool {
	for _, b := range m.Bindings {
		if b.Influences() > 0 {
			return true
		}
	}
	return false
}

// SkinPoint blends p through the bound bones' final transforms:
// sum(weight_i * finals[id_i]) * p. Unbound vertices are returned unchanged.
func SkinPoint(finals []math.Mat4, p math.Vec3, b VertexBoneBinding) math.Vec3 {
	var blend math.Mat4
	bound := false
	for i, w := range b.Weights {
		if w == 0 {
			continue
		}
		blend = blend.AddScaled(finals[b.IDs[i]], w)
		bound = true
	}
	if !bound {
		return p
	}
	return blend.TransformPoint(p)
}

// SkinnedPositions skins every vertex of m on the CPU into dst.
func (m *Mesh) SkinnedPositions(finals []math.Mat4, dst []math.Vec3) []math.Vec3 {
	dst = dst[:0]
	for i, p := range m.Positions {
		if i < len(m.Bindings) {
			p = SkinPoint(finals, p, m.Bindings[i])
		}
		dst = append(dst, p)
	}
	return dst
}

// FloatsPerVertex is the stride of InterleavedVertices: position(3) +
// normal(3) + texcoord(2).
const FloatsPerVertex = 8

// InterleavedVertices packs position, normal and texcoord per vertex.
// Missing normals default to +Y and missing texcoords to zero.
func (m *Mesh) InterleavedVertices() []float32 {
	out := make([]float32, 0, len(m.Positions)*FloatsPerVertex)
	for i, p := range m.Positions {
		n := math.Vec3{Y: 1}
		if i < len(m.Normals) && m.Normals[i].Length() > 0 {
			n = m.Normals[i]
		}
		var uv [2]float32
		if i < len(m.TexCoords) {
			uv = m.TexCoords[i]
		}
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv[0], uv[1])
	}
	return out
}

// BoneAttributes flattens the bindings to MaxInfluences ids and weights per
// vertex, in vertex order.
func (m *Mesh) BoneAttributes() ([]int32, []float32) {
	ids := make([]int32, 0, len(m.Positions)*MaxInfluences)
	weights := make([]float32, 0, len(m.Positions)*MaxInfluences)
	for i := range m.Positions {
		var b VertexBoneBinding
		if i < len(m.Bindings) {
			b = m.Bindings[i]
		}
		ids = append(ids, b.IDs[:]...)
		weights = append(weights, b.Weights[:]...)
	}
	return ids, weights
}
