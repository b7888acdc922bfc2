// Package formats provides parsers for the file formats the engine reads.
// Rig (.rig.yaml) describes a node hierarchy, skinned meshes and keyframed
// animation clips.
package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// Rig format errors.
var (
	ErrNoRoot          = errors.New("rig has no root node")
	ErrEmptyNodeName   = errors.New("rig node has empty name")
	ErrDuplicateNode   = errors.New("duplicate rig node name")
	ErrUnknownNode     = errors.New("reference to unknown rig node")
	ErrIndexOutOfRange = errors.New("rig index out of range")
	ErrNormalCount     = errors.New("normal count does not match position count")
)

// DefaultTicksPerSecond is used when a clip does not declare a tick rate.
const DefaultTicksPerSecond = 25.0

// RigTransform is a node or bone transform. Either Matrix is set (16 floats,
// column-major) or any subset of translation, rotation (x, y, z, w) and scale.
type RigTransform struct {
	Translation *[3]float32  `yaml:"translation,omitempty"`
	Rotation    *[4]float32  `yaml:"rotation,omitempty"`
	Scale       *[3]float32  `yaml:"scale,omitempty"`
	Matrix      *[16]float32 `yaml:"matrix,omitempty"`
}

// Mat4 resolves the transform to a matrix. Missing components default to identity.
func (t RigTransform) Mat4() math.Mat4 {
	if t.Matrix != nil {
		return math.Mat4(*t.Matrix)
	}
	tr := math.Vec3{}
	rot := math.QuatIdentity()
	sc := math.Vec3{X: 1, Y: 1, Z: 1}
	if t.Translation != nil {
		tr = math.Vec3FromArray(*t.Translation)
	}
	if t.Rotation != nil {
		rot = math.QuatFromArray(*t.Rotation)
	}
	if t.Scale != nil {
		sc = math.Vec3FromArray(*t.Scale)
	}
	return math.TRS(tr, rot, sc)
}

// RigNode is one node of the scene tree.
type RigNode struct {
	Name      string       `yaml:"name"`
	Transform RigTransform `yaml:"transform,omitempty"`
	Children  []RigNode    `yaml:"children,omitempty"`
}

// RigMaterial is the flat material of a mesh.
type RigMaterial struct {
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// RigWeight binds one vertex to the enclosing bone.
type RigWeight struct {
	Vertex int     `yaml:"vertex"`
	Weight float32 `yaml:"weight"`
}

// RigBone is a mesh's reference to a skeleton node.
type RigBone struct {
	Name    string       `yaml:"name"`
	Offset  RigTransform `yaml:"offset"` // mesh space to bone space (inverse bind pose)
	Weights []RigWeight  `yaml:"weights,omitempty"`
}

// RigMesh is a triangle mesh, optionally skinned.
type RigMesh struct {
	Name      string       `yaml:"name"`
	Material  RigMaterial  `yaml:"material"`
	Positions [][3]float32 `yaml:"positions"`
	Normals   [][3]float32 `yaml:"normals,omitempty"`
	TexCoords [][2]float32 `yaml:"texcoords,omitempty"`
	Indices   []uint32     `yaml:"indices"`
	Bones     []RigBone    `yaml:"bones,omitempty"`
}

// RigVectorKey is a translation or scale keyframe.
type RigVectorKey struct {
	Time  float32    `yaml:"time"`
	Value [3]float32 `yaml:"value"`
}

// RigQuatKey is a rotation keyframe, value as (x, y, z, w).
type RigQuatKey struct {
	Time  float32    `yaml:"time"`
	Value [4]float32 `yaml:"value"`
}

// RigChannel animates a single node.
type RigChannel struct {
	Node      string         `yaml:"node"`
	Positions []RigVectorKey `yaml:"positions"`
	Rotations []RigQuatKey   `yaml:"rotations"`
	Scales    []RigVectorKey `yaml:"scales"`
}

// RigAnimation is one animation clip. Times are in ticks.
type RigAnimation struct {
	Name           string       `yaml:"name"`
	TicksPerSecond float32      `yaml:"ticks_per_second"`
	Duration       float32      `yaml:"duration"`
	Channels       []RigChannel `yaml:"channels"`
}

// Rig represents a parsed rig file.
type Rig struct {
	Name       string         `yaml:"name"`
	Root       *RigNode       `yaml:"root"`
	Meshes     []RigMesh      `yaml:"meshes,omitempty"`
	Animations []RigAnimation `yaml:"animations,omitempty"`
}

// ParseRig parses and validates rig data.
func ParseRig(data []byte) (*Rig, error) {
	var rig Rig
	if err := yaml.Unmarshal(data, &rig); err != nil {
		return nil, fmt.Errorf("decode rig: %w", err)
	}
	if err := rig.Validate(); err != nil {
		return nil, err
	}
	return &rig, nil
}

// ParseRigFile reads and parses a rig file.
func ParseRigFile(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rig, err := ParseRig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rig, nil
}

// Encode serializes the rig to YAML.
func (r *Rig) Encode() ([]byte, error) {
	return yaml.Marshal(r)
}

// Validate checks structural well-formedness: a root, unique non-empty node names,
// index bounds, and that bones and channels name existing nodes.
// Key ordering within tracks is a precondition and is not checked.
func (r *Rig) Validate() error {
	if r.Root == nil {
		return ErrNoRoot
	}

	names := make(map[string]bool)
	var err error
	r.Root.Walk(func(n *RigNode) {
		if err != nil {
			return
		}
		switch {
		case n.Name == "":
			err = ErrEmptyNodeName
		case names[n.Name]:
			err = fmt.Errorf("%w: %q", ErrDuplicateNode, n.Name)
		}
		names[n.Name] = true
	})
	if err != nil {
		return err
	}

	for i := range r.Meshes {
		if err := r.Meshes[i].validate(names); err != nil {
			return fmt.Errorf("mesh %d (%s): %w", i, r.Meshes[i].Name, err)
		}
	}

	for i := range r.Animations {
		anim := &r.Animations[i]
		for j := range anim.Channels {
			ch := &anim.Channels[j]
			if !names[ch.Node] {
				return fmt.Errorf("animation %q channel %d: %w: %q", anim.Name, j, ErrUnknownNode, ch.Node)
			}
		}
	}

	return nil
}

func (m *RigMesh) validate(nodes map[string]bool) error {
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return ErrNormalCount
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != len(m.Positions) {
		return fmt.Errorf("%w: %d texcoords for %d positions", ErrIndexOutOfRange, len(m.TexCoords), len(m.Positions))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("%w: index %d, %d positions", ErrIndexOutOfRange, idx, len(m.Positions))
		}
	}
	for _, b := range m.Bones {
		if !nodes[b.Name] {
			return fmt.Errorf("bone %w: %q", ErrUnknownNode, b.Name)
		}
		for _, w := range b.Weights {
			if w.Vertex < 0 || w.Vertex >= len(m.Positions) {
				return fmt.Errorf("bone %q weight %w: vertex %d", b.Name, ErrIndexOutOfRange, w.Vertex)
			}
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order.
func (n *RigNode) Walk(fn func(*RigNode)) {
	fn(n)
	for i := range n.Children {
		n.Children[i].Walk(fn)
	}
}

// NodeCount returns the number of nodes in the tree.
func (r *Rig) NodeCount() int {
	if r.Root == nil {
		return 0
	}
	count := 0
	r.Root.Walk(func(*RigNode) { count++ })
	return count
}

// GetTotalVertexCount returns the total number of vertices across all meshes.
func (r *Rig) GetTotalVertexCount() int {
	total := 0
	for i := range r.Meshes {
		total += len(r.Meshes[i].Positions)
	}
	return total
}

// HasAnimation returns true if the rig declares at least one clip.
func (r *Rig) HasAnimation() bool {
	return len(r.Animations) > 0
}

// EffectiveTicksPerSecond returns the clip's tick rate, or DefaultTicksPerSecond if unset.
func (a *RigAnimation) EffectiveTicksPerSecond() float32 {
	if a.TicksPerSecond <= 0 {
		return DefaultTicksPerSecond
	}
	return a.TicksPerSecond
}
