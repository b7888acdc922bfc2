package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-rig/pkg/math"
)

// lineBuffer is a dynamic vertex buffer for debug lines.
type lineBuffer struct {
	vao, vbo uint32
	capacity int // in floats
	scratch  []float32
}

func (b *lineBuffer) init() {
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBuffer) draw(points []math.Vec3) {
	b.scratch = b.scratch[:0]
	for _, p := range points {
		b.scratch = append(b.scratch, p.X, p.Y, p.Z)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(b.scratch) > b.capacity {
		b.capacity = len(b.scratch)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.scratch)*4, unsafe.Pointer(&b.scratch[0]))
	gl.DrawArrays(gl.LINES, 0, int32(len(points)))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBuffer) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}
