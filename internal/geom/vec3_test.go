package geom

import (
	"math"
	"testing"
)

func TestVec3Distance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{3, 4, 0}
	if d := a.Distance(b); math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestVec3Lerp(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
		alpha    float64
		expected Vec3
	}{
		{"zero alpha", Vec3{1, 2, 3}, Vec3{5, 5, 5}, 0, Vec3{1, 2, 3}},
		{"full alpha", Vec3{1, 2, 3}, Vec3{5, 5, 5}, 1, Vec3{5, 5, 5}},
		{"half", Vec3{0, 0, 10}, Vec3{2, -2, 10}, 0.5, Vec3{1, -1, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.Lerp(tt.to, tt.alpha)
			if got.Distance(tt.expected) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVec3CrossOrthogonal(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-2, 0.5, 4}
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("cross product not orthogonal: %v", c)
	}
}

func TestVec3Axis(t *testing.T) {
	v := Vec3{1, 2, 3}
	for i, expected := range []float64{1, 2, 3} {
		if v.Axis(i) != expected {
			t.Errorf("axis %d: expected %f, got %f", i, expected, v.Axis(i))
		}
	}
	w := v.WithAxis(1, -7)
	if w.Y != -7 || v.Y != 2 {
		t.Errorf("WithAxis should copy, got %v from %v", w, v)
	}
	if n := (Vec3{}).Normalize(); n != (Vec3{}) {
		t.Errorf("normalize of zero vector should be zero, got %v", n)
	}
}
