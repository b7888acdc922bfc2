package lighting

import (
	"github.com/Faultbox/midgard-rig/internal/config"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

// MaxPointLights is the size of the pointlights uniform array in the mesh shader.
const MaxPointLights = config.MaxPointLights

// PointLight is an attenuated omnidirectional light.
// Intensity falls off as 1 / (Constant + Linear*d + Quadratic*d*d).
type PointLight struct {
	Position  math.Vec3
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Color     math.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Attenuation returns the light's intensity factor at distance d.
func (l PointLight) Attenuation(d float32) float32 {
	den := l.Constant + l.Linear*d + l.Quadratic*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Count returns the number of lights in the buffer.
func (b *PointLightBuffer) Count() int { return len(b.Lights) }

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	light.Color = clampColor(light.Color)
	if light.Constant <= 0 && light.Linear <= 0 && light.Quadratic <= 0 {
		light.Constant = 1
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	for _, l := range lights {
		if !b.AddLight(l) {
			return
		}
	}
}

func clampColor(c math.Vec3) math.Vec3 {
	clamp := func(v float32) float32 {
		switch {
		case v > 1:
			return 1
		case v < 0:
			return 0
		}
		return v
	}
	return math.Vec3{X: clamp(c.X), Y: clamp(c.Y), Z: clamp(c.Z)}
}
