package skeleton

import (
	"fmt"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// BoneInfo pairs a bone's inverse bind pose with its most recently evaluated
// skinning transform.
type BoneInfo struct {
	Offset math.Mat4
	Final  math.Mat4
}

// Registry maps bone names to dense indices in first-seen order.
// Offsets and finals are kept in parallel slices so Finals can be handed
// to the GPU without copying.
type Registry struct {
	index   map[string]int
	names   []string
	offsets []math.Mat4
	finals  []math.Mat4
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register returns the index for name, assigning the next free one on first sight.
// New bones start with identity offset and final transforms.
// Registering a new name after Freeze panics.
func (r *Registry) Register(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	if r.frozen {
		panic(fmt.Sprintf("skeleton: register %q on frozen registry", name))
	}
	i := len(r.names)
	r.index[name] = i
	r.names = append(r.names, name)
	r.offsets = append(r.offsets, math.Identity())
	r.finals = append(r.finals, math.Identity())
	return i
}

// Lookup returns the index of a registered bone.
func (r *Registry) Lookup(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Freeze ends the loading phase. Only final transforms change afterwards.
func (r *Registry) Freeze() { r.frozen = true }

// Count returns the number of registered bones.
func (r *Registry) Count() int { return len(r.names) }

// Name returns the name of bone i.
func (r *Registry) Name(i int) string { return r.names[i] }

// Names returns bone names in index order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// SetOffset sets the inverse bind pose of bone i.
func (r *Registry) SetOffset(i int, m math.Mat4) { r.offsets[i] = m }

// Offset returns the inverse bind pose of bone i.
func (r *Registry) Offset(i int) math.Mat4 { return r.offsets[i] }

// SetFinal stores the skinning transform of bone i.
func (r *Registry) SetFinal(i int, m math.Mat4) { r.finals[i] = m }

// Final returns the skinning transform of bone i.
func (r *Registry) Final(i int) math.Mat4 { return r.finals[i] }

// Bone returns both matrices of bone i.
func (r *Registry) Bone(i int) BoneInfo {
	return BoneInfo{Offset: r.offsets[i], Final: r.finals[i]}
}

// Finals returns the dense final transform array indexed by bone index.
// The slice is owned by the registry and overwritten by the next evaluation.
func (r *Registry) Finals() []math.Mat4 { return r.finals }

// CopyFinals copies the final transforms into dst, growing it if needed.
func (r *Registry) CopyFinals(dst []math.Mat4) []math.Mat4 {
	if cap(dst) < len(r.finals) {
		dst = make([]math.Mat4, len(r.finals))
	}
	dst = dst[:len(r.finals)]
	copy(dst, r.finals)
	return dst
}
