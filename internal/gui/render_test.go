package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/geom"
)

func TestColorFromHex(t *testing.T) {
	fallback := rl.NewColor(1, 2, 3, 4)
	tests := []struct {
		hex   string
		alpha float64
		want  rl.Color
	}{
		{"#00df81", 1, rl.NewColor(0, 223, 129, 255)},
		{"#00df81", 0.3, rl.NewColor(0, 223, 129, 77)},
		{"#ffffff", 2, rl.NewColor(255, 255, 255, 255)},
		{"00df81", 1, fallback},
		{"#00dfzz", 1, fallback},
	}
	for _, tt := range tests {
		if got := colorFromHex(tt.hex, tt.alpha, fallback); got != tt.want {
			t.Errorf("colorFromHex(%q, %g) = %v, want %v", tt.hex, tt.alpha, got, tt.want)
		}
	}
}

func TestToCamera3D(t *testing.T) {
	cam, err := camera.New(camera.DefaultParams(), 1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	c := toCamera3D(cam)
	if c.Fovy != 75 {
		t.Errorf("expected fovy 75, got %v", c.Fovy)
	}
	if c.Position != rl.NewVector3(0, 0, 10) {
		t.Errorf("unexpected position %v", c.Position)
	}
	if c.Up != rl.NewVector3(0, 1, 0) || c.Target != rl.NewVector3(0, 0, 0) {
		t.Errorf("unexpected orientation %v %v", c.Up, c.Target)
	}
	if c.Projection != rl.CameraPerspective {
		t.Error("expected perspective projection")
	}
}

func TestToVector3(t *testing.T) {
	if v := toVector3(geom.Vec3{X: 1.5, Y: -2, Z: 3}); v != rl.NewVector3(1.5, -2, 3) {
		t.Errorf("unexpected vector %v", v)
	}
}
