package skeleton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Register("Hip"))
	assert.Equal(t, 1, r.Register("Spine"))
	assert.Equal(t, 0, r.Register("Hip"), "re-registering returns the existing index")
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"Hip", "Spine"}, r.Names())
	assert.Equal(t, "Spine", r.Name(1))

	i, ok := r.Lookup("Spine")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = r.Lookup("Tail")
	assert.False(t, ok)

	assert.Equal(t, math.Identity(), r.Offset(1))
	assert.Equal(t, math.Identity(), r.Final(1))

	off := math.Translate(math.V3(0, -1, 0))
	r.SetOffset(1, off)
	r.SetFinal(1, math.Scale(math.V3(2, 2, 2)))
	assert.Equal(t, BoneInfo{Offset: off, Final: math.Scale(math.V3(2, 2, 2))}, r.Bone(1))
	assert.Len(t, r.Finals(), 2)
}

func TestRegistry_Frozen(t *testing.T) {
	r := registryOf("A")
	r.Freeze()

	assert.NotPanics(t, func() { r.Register("A") })
	assert.Panics(t, func() { r.Register("B") })
	assert.NotPanics(t, func() { r.SetFinal(0, math.Identity()) })
}

func TestRegistry_CopyFinals(t *testing.T) {
	r := registryOf("A", "B")
	r.SetFinal(1, math.Translate(math.V3(1, 2, 3)))

	dst := r.CopyFinals(nil)
	assert.Equal(t, r.Finals(), dst)

	dst[1] = math.Identity()
	assert.Equal(t, math.V3(1, 2, 3), r.Final(1).Translation(), "copy is independent")

	names := r.Names()
	names[0] = "Z"
	assert.Equal(t, "A", r.Name(0))
}
