// Package renderer draws skinned rig meshes and their bone overlay with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rig/internal/engine/lighting"
	"github.com/Faultbox/midgard-rig/internal/engine/renderer/shaders"
	"github.com/Faultbox/midgard-rig/internal/engine/shader"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// MaxBones is the size of the bones uniform array in the mesh shader.
const MaxBones = 128

// Frame holds the per-frame camera state shared by every draw.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	ViewPos    math.Vec3
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	width, height int

	meshProgram *shader.Program
	lineProgram *shader.Program
	lines       lineBuffer

	log *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height, log: logger.Named("renderer")}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Viewport(0, 0, int32(width), int32(height))

	var err error
	r.meshProgram, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.lines.init()

	r.log.Debug("shader programs created",
		zap.Uint32("mesh", r.meshProgram.ID),
		zap.Uint32("line", r.lineProgram.ID),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.lines.delete()
	r.meshProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	if err := gl.GetError(); err != gl.NO_ERROR {
		r.log.Warn("gl error", zap.Uint32("code", err))
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows. Call it after
// drawing and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}

// SetLights uploads the light set to the mesh program.
func (r *Renderer) SetLights(lights *lighting.Set) {
	p := r.meshProgram
	p.Use()
	for _, u := range lights.Uniforms() {
		switch {
		case u.Int != nil:
			p.SetInt(u.Name, *u.Int)
		case len(u.Value) == 1:
			p.SetFloat(u.Name, u.Value[0])
		case len(u.Value) == 3:
			p.SetVec3(u.Name, math.Vec3{X: u.Value[0], Y: u.Value[1], Z: u.Value[2]})
		}
	}
}

// DrawMesh draws one uploaded mesh posed by palette. When animated is false
// the palette is ignored and the bind pose is drawn.
func (r *Renderer) DrawMesh(f Frame, m *GPUMesh, palette []math.Mat4, animated bool) {
	p := r.meshProgram
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetMat4("model", math.Identity())
	p.SetVec3("viewPos", f.ViewPos)
	p.SetBool("animated", animated)
	if animated {
		p.SetMat4Array("bones[0]", palette, MaxBones)
	}

	p.SetVec3("material.ambient", m.Material.Ambient)
	p.SetVec3("material.diffuse", m.Material.Diffuse)
	p.SetVec3("material.specular", m.Material.Specular)
	p.SetFloat("material.shininess", m.Material.Shininess)

	m.draw()
}

// DrawLines draws line segments given as consecutive point pairs.
func (r *Renderer) DrawLines(f Frame, points []math.Vec3, color math.Vec3) {
	if len(points) < 2 {
		return
	}
	p := r.lineProgram
	p.Use()
	p.SetMat4("projection", f.Projection)
	p.SetMat4("view", f.View)
	p.SetVec3("color", color)

	gl.Disable(gl.DEPTH_TEST)
	r.lines.draw(points)
	gl.Enable(gl.DEPTH_TEST)
}
