package skeleton

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/formats"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// Now is the clock's time source; nil uses time.Now.
	Now func() time.Time
	// Speed is the playback multiplier; 0 means 1.
	Speed float32
	// TicksPerSecond replaces a clip's unset tick rate; 0 means DefaultTicksPerSecond.
	TicksPerSecond float32
}

// Load builds a Model from a parsed rig. Bones are registered mesh by mesh in
// file order; each vertex keeps its first MaxInfluences weights. Only the first
// animation is used. The model is posed once before returning.
func Load(rig *formats.Rig, opts LoadOptions) (*Model, error) {
	if err := rig.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("skeleton")

	m := &Model{
		Name:  rig.Name,
		Root:  buildHierarchy(rig.Root),
		Bones: NewRegistry(),
		Clock: NewClock(opts.Now),
	}
	if opts.Speed > 0 {
		m.Clock.Speed = opts.Speed
	}
	m.GlobalInverse = m.Root.Local.Inverse()

	for i := range rig.Meshes {
		mesh, dropped := m.loadMesh(&rig.Meshes[i])
		if dropped > 0 {
			log.Warn("vertex influences over limit dropped",
				zap.String("mesh", mesh.Name),
				zap.Int("dropped", dropped),
				zap.Int("limit", MaxInfluences),
			)
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	m.Bones.Freeze()

	if len(rig.Animations) > 0 {
		anim := &rig.Animations[0]
		tps := anim.TicksPerSecond
		if tps <= 0 {
			tps = opts.TicksPerSecond
		}
		clip, err := NewClip(anim.Name, tps, anim.Duration, convertChannels(anim.Channels))
		if err != nil {
			return nil, err
		}
		if clip.Duration <= 0 {
			log.Warn("clip has no duration, it will hold its first frame", zap.String("clip", clip.Name))
		}
		m.Clip = clip
		m.Animated = true
		if extra := len(rig.Animations) - 1; extra > 0 {
			log.Debug("extra animations ignored", zap.Int("count", extra))
		}
	}

	m.UpdateAt(0)

	log.Info("model loaded",
		zap.String("name", m.Name),
		zap.Int("nodes", m.Root.Count()),
		zap.Int("bones", m.Bones.Count()),
		zap.Int("meshes", len(m.Meshes)),
		zap.Bool("animated", m.Animated),
	)
	return m, nil
}

// LoadFile parses a rig file and builds a Model from it.
func LoadFile(path string, opts LoadOptions) (*Model, error) {
	rig, err := formats.ParseRigFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Load(rig, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// loadMesh converts one rig mesh, registering its bones and filling vertex
// bindings. It returns the number of influences that did not fit.
func (m *Model) loadMesh(rm *formats.RigMesh) (Mesh, int) {
	mesh := Mesh{
		Name:      rm.Name,
		Positions: make([]math.Vec3, len(rm.Positions)),
		Normals:   make([]math.Vec3, len(rm.Positions)),
		TexCoords: make([][2]float32, len(rm.Positions)),
		Indices:   rm.Indices,
		Bindings:  make([]VertexBoneBinding, len(rm.Positions)),
		Material: Material{
			Ambient:   math.Vec3FromArray(rm.Material.Ambient),
			Diffuse:   math.Vec3FromArray(rm.Material.Diffuse),
			Specular:  math.Vec3FromArray(rm.Material.Specular),
			Shininess: rm.Material.Shininess,
		},
	}
	for i, p := range rm.Positions {
		mesh.Positions[i] = math.Vec3FromArray(p)
	}
	for i, n := range rm.Normals {
		mesh.Normals[i] = math.Vec3FromArray(n)
	}
	copy(mesh.TexCoords, rm.TexCoords)

	dropped := 0
	for _, rb := range rm.Bones {
		id := m.Bones.Register(rb.Name)
		m.Bones.SetOffset(id, rb.Offset.Mat4())
		for _, w := range rb.Weights {
			if !mesh.Bindings[w.Vertex].Add(int32(id), w.Weight) {
				dropped++
			}
		}
	}
	return mesh, dropped
}

func convertChannels(in []formats.RigChannel) []Channel {
	out := make([]Channel, len(in))
	for i, rc := range in {
		ch := Channel{
			Node:      rc.Node,
			Positions: make([]VectorKey, len(rc.Positions)),
			Rotations: make([]QuatKey, len(rc.Rotations)),
			Scales:    make([]VectorKey, len(rc.Scales)),
		}
		for j, k := range rc.Positions {
			ch.Positions[j] = VectorKey{Time: k.Time, Value: math.Vec3FromArray(k.Value)}
		}
		for j, k := range rc.Rotations {
			ch.Rotations[j] = QuatKey{Time: k.Time, Value: math.QuatFromArray(k.Value)}
		}
		for j, k := range rc.Scales {
			ch.Scales[j] = VectorKey{Time: k.Time, Value: math.Vec3FromArray(k.Value)}
		}
		out[i] = ch
	}
	return out
}
