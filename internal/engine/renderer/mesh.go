package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-rig/internal/engine/skeleton"
)

// ErrEmptyMesh is returned when uploading a mesh without triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Vertex attribute locations shared with mesh.vert.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
	attribBoneIDs  = 3
	attribWeights  = 4
)

// GPUMesh is a skeleton mesh uploaded to GPU buffers.
type GPUMesh struct {
	Name     string
	Material skeleton.Material

	vao, vbo, boneVBO, ebo uint32
	indexCount             int32
}

// Upload creates GPU buffers for a mesh.
func Upload(m *skeleton.Mesh) (*GPUMesh, error) {
	if len(m.Indices) == 0 {
		return nil, ErrEmptyMesh
	}
	vertices := m.InterleavedVertices()
	ids, weights := m.BoneAttributes()

	g := &GPUMesh{Name: m.Name, Material: m.Material, indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	// Interleaved float attributes
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(skeleton.FloatsPerVertex * 4)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(attribTexCoord)

	// Bone IDs (integer attribute) followed by weights, non-interleaved
	idBytes := len(ids) * 4
	gl.GenBuffers(1, &g.boneVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.boneVBO)
	gl.BufferData(gl.ARRAY_BUFFER, idBytes+len(weights)*4, nil, gl.STATIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, idBytes, unsafe.Pointer(&ids[0]))
	gl.BufferSubData(gl.ARRAY_BUFFER, idBytes, len(weights)*4, unsafe.Pointer(&weights[0]))

	gl.VertexAttribIPointer(attribBoneIDs, skeleton.MaxInfluences, gl.INT, 0, nil)
	gl.EnableVertexAttribArray(attribBoneIDs)
	gl.VertexAttribPointer(attribWeights, skeleton.MaxInfluences, gl.FLOAT, false, 0, unsafe.Pointer(uintptr(idBytes)))
	gl.EnableVertexAttribArray(attribWeights)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Unbind
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return g, nil
}

func (g *GPUMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the mesh's GPU buffers.
func (g *GPUMesh) Delete() {
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteBuffers(1, &g.boneVBO)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}
