// Package lighting describes the scene light set and flattens it to shader uniforms.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// DirLight is a light at infinity, such as the sun.
type DirLight struct {
	Direction math.Vec3
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Color     math.Vec3
}

// SpotLight is a cone light. Cutoffs are stored as cosines of the half-angles.
type SpotLight struct {
	Position    math.Vec3
	Direction   math.Vec3
	Ambient     math.Vec3
	Diffuse     math.Vec3
	Specular    math.Vec3
	Color       math.Vec3
	InnerCutoff float32
	OuterCutoff float32
	Constant    float32
	Linear      float32
	Quadratic   float32
}

// Set is every light the mesh shader knows about.
type Set struct {
	Directional DirLight
	Points      *PointLightBuffer
	Spot        SpotLight
	SpotEnabled bool
}

// FromConfig builds a light set from configuration.
func FromConfig(cfg config.LightingConfig) *Set {
	d := cfg.Directional
	s := &Set{
		Directional: DirLight{
			Direction: math.Vec3FromArray(d.Direction).Normalize(),
			Ambient:   math.Vec3FromArray(d.Ambient),
			Diffuse:   math.Vec3FromArray(d.Diffuse),
			Specular:  math.Vec3FromArray(d.Specular),
			Color:     math.Vec3FromArray(d.Color),
		},
		Points:      NewPointLightBuffer(),
		SpotEnabled: cfg.Spot.Enabled,
	}

	for _, p := range cfg.Points {
		s.Points.AddLight(PointLight{
			Position:  math.Vec3FromArray(p.Position),
			Ambient:   math.Vec3FromArray(p.Ambient),
			Diffuse:   math.Vec3FromArray(p.Diffuse),
			Specular:  math.Vec3FromArray(p.Specular),
			Color:     math.Vec3FromArray(p.Color),
			Constant:  p.Constant,
			Linear:    p.Linear,
			Quadratic: p.Quadratic,
		})
	}

	sp := cfg.Spot
	s.Spot = SpotLight{
		Direction:   math.Vec3{Z: -1},
		Ambient:     math.Vec3FromArray(sp.Ambient),
		Diffuse:     math.Vec3FromArray(sp.Diffuse),
		Specular:    math.Vec3FromArray(sp.Specular),
		Color:       math.Vec3FromArray(sp.Color),
		InnerCutoff: math32.Cos(sp.InnerCutoff * math32.Pi / 180),
		OuterCutoff: math32.Cos(sp.OuterCutoff * math32.Pi / 180),
		Constant:    sp.Constant,
		Linear:      sp.Linear,
		Quadratic:   sp.Quadratic,
	}
	return s
}

// AttachSpot moves the spot light to the viewer.
func (s *Set) AttachSpot(position, direction math.Vec3) {
	s.Spot.Position = position
	s.Spot.Direction = direction.Normalize()
}

// Uniform is one named shader value: a float (len 1), vec3 (len 3) or int (Int set).
type Uniform struct {
	Name  string
	Value []float32
	Int   *int32
}

func vec3(name string, v math.Vec3) Uniform {
	return Uniform{Name: name, Value: []float32{v.X, v.Y, v.Z}}
}

func float(name string, f float32) Uniform {
	return Uniform{Name: name, Value: []float32{f}}
}

func integer(name string, i int32) Uniform {
	return Uniform{Name: name, Int: &i}
}

// Uniforms flattens the set into the struct-member uniforms of the mesh shader:
// dirlight, pointlights[i], spotlight, and the counts.
func (s *Set) Uniforms() []Uniform {
	d := s.Directional
	u := []Uniform{
		vec3("dirlight.direction", d.Direction),
		vec3("dirlight.ambient", d.Ambient),
		vec3("dirlight.diffuse", d.Diffuse),
		vec3("dirlight.specular", d.Specular),
		vec3("dirlight.color", d.Color),
		integer("pointlightCount", int32(s.Points.Count())),
	}

	for i, p := range s.Points.Lights {
		name := fmt.Sprintf("pointlights[%d]", i)
		u = append(u,
			vec3(name+".position", p.Position),
			vec3(name+".ambient", p.Ambient),
			vec3(name+".diffuse", p.Diffuse),
			vec3(name+".specular", p.Specular),
			vec3(name+".color", p.Color),
			float(name+".constant", p.Constant),
			float(name+".linear", p.Linear),
			float(name+".quadratic", p.Quadratic),
		)
	}

	enabled := int32(0)
	if s.SpotEnabled {
		enabled = 1
	}
	sp := s.Spot
	u = append(u,
		integer("spotEnabled", enabled),
		vec3("spotlight.position", sp.Position),
		vec3("spotlight.direction", sp.Direction),
		vec3("spotlight.ambient", sp.Ambient),
		vec3("spotlight.diffuse", sp.Diffuse),
		vec3("spotlight.specular", sp.Specular),
		vec3("spotlight.color", sp.Color),
		float("spotlight.innerCutoff", sp.InnerCutoff),
		float("spotlight.outerCutoff", sp.OuterCutoff),
		float("spotlight.constant", sp.Constant),
		float("spotlight.linear", sp.Linear),
		float("spotlight.quadratic", sp.Quadratic),
	)
	return u
}
