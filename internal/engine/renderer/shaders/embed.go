// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader skins vertices with the bone palette.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader lights meshes with the directional, point and spot lights.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LineVertexShader is the vertex shader for the bone overlay.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for the bone overlay.
//
//go:embed line.frag
var LineFragmentShader string
