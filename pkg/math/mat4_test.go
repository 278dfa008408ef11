package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should report true for Identity()")
	}
	if Translate(1, 0, 0).IsIdentity() {
		t.Error("IsIdentity should report false for a translation")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", got)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"scale then translate", Translate(1, 1, 1).Mul(Scale(2, 3, 4)), Vec3{1, 1, 1}, Vec3{3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	d := Vec3{0, 1, 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection: got %v, want %v", got, d)
	}
}

func TestRotateAxisY90(t *testing.T) {
	m := RotateAxis(Vec3{0, 1, 0}, float32(math.Pi/2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if !result.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateAxis 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateAxisNormalizesAxis(t *testing.T) {
	a := RotateAxis(Vec3{0, 5, 0}, 0.3)
	b := RotateAxis(Vec3{0, 1, 0}, 0.3)
	for i := range a {
		if abs(a[i]-b[i]) > 1e-6 {
			t.Fatalf("element %d: got %f, want %f", i, a[i], b[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
