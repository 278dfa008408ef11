package math

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float32
	}{
		{"axis", Vec3{0, 0, 7}, 1},
		{"diagonal", Vec3{1, 2, 2}, 1},
		{"zero", Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.v.Normalize().Length()
			if abs(l-tt.want) > 0.001 {
				t.Errorf("Normalize().Length() = %v, want %v", l, tt.want)
			}
		})
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 0, -1}
	if got := a.Min(b); got != (Vec3{1, 0, -2}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, -1}) {
		t.Errorf("Max = %v", got)
	}
}

func TestVec3Distance(t *testing.T) {
	if d := (Vec3{0, 0, 0}).Distance(Vec3{0, 3, 4}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}
