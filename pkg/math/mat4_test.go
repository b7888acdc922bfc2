package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v", got)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(Vec3{10, 20, 30}), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(Vec3{2, 2, 2}), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0, 7}, Vec3{-1, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Y is (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	m := TRS(Vec3{0, 0, 5}, q, Vec3{2, 2, 2})
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 0, 3} // (1,0,0) -> (2,0,0) -> (0,0,-2) -> (0,0,3)
	if got.Distance(want) > 0.001 {
		t.Errorf("TRS point = %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.7)
	m := TRS(Vec3{3, -2, 1}, q, Vec3{1, 2, 0.5})
	if !m.Mul(m.Inverse()).ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * M^-1 should be identity, got %v", m.Mul(m.Inverse()))
	}

	var singular Mat4
	if singular.Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestAddScaled(t *testing.T) {
	var sum Mat4
	sum = sum.AddScaled(Identity(), 0.25)
	sum = sum.AddScaled(Identity(), 0.25)
	if sum[0] != 0.5 || sum[15] != 0.5 || sum[1] != 0 {
		t.Errorf("AddScaled accumulated %v", sum)
	}
}

func TestIsFinite(t *testing.T) {
	m := Identity()
	if !m.IsFinite() {
		t.Error("identity should be finite")
	}
	m[3] = float32(math.NaN())
	if m.IsFinite() {
		t.Error("NaN element should make matrix non-finite")
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	eye := m.TransformPoint(Vec3{0, 0, 5})
	if eye.Length() > 0.0001 {
		t.Errorf("eye should map to origin, got %v", eye)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
