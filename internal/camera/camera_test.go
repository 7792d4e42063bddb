package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/nodemesh/internal/geom"
)

func TestNewCamera(t *testing.T) {
	c, err := New(DefaultParams(), 1600, 900)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if c.Position != (geom.Vec3{Z: 10}) {
		t.Errorf("expected position (0,0,10), got %v", c.Position)
	}
	if math.Abs(c.Aspect-16.0/9.0) > 1e-12 {
		t.Errorf("expected aspect 16/9, got %f", c.Aspect)
	}
	if c.FOV != 75 || c.Near != 0.1 || c.Far != 1000 {
		t.Errorf("unexpected frustum: fov=%f near=%f far=%f", c.FOV, c.Near, c.Far)
	}
}

func TestNewCameraInvalid(t *testing.T) {
	if _, err := New(DefaultParams(), 0, 10); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}

	tests := []struct {
		name string
		edit func(*Params)
	}{
		{"far not beyond near", func(p *Params) { p.Far = p.Near }},
		{"zero depth", func(p *Params) { p.Depth = 0 }},
		{"negative depth", func(p *Params) { p.Depth = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			if _, err := New(p, 10, 10); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestEaseConvergesGeometrically(t *testing.T) {
	c, _ := New(DefaultParams(), 800, 600)
	ptr := Pointer{X: 1, Y: -0.6}
	target := geom.Vec3{X: 0.5, Y: -0.3, Z: 10}

	prev := c.Position.Distance(target)
	ratio := 1 - c.Params.Smoothing
	for frame := 0; frame < 2000 && prev > 1e-9; frame++ {
		c.Ease(ptr)
		d := c.Position.Distance(target)
		if d >= prev {
			t.Fatalf("frame %d: distance did not shrink (%g -> %g)", frame, prev, d)
		}
		if math.Abs(d-prev*ratio) > 1e-12 {
			t.Fatalf("frame %d: expected ratio %f, got %f", frame, ratio, d/prev)
		}
		prev = d
	}
	if prev > 1e-9 {
		t.Errorf("camera did not converge, remaining distance %g", prev)
	}
	if c.Goal() != target {
		t.Errorf("expected goal %v, got %v", target, c.Goal())
	}
}

func TestResizeOnlyTouchesProjection(t *testing.T) {
	c, _ := New(DefaultParams(), 800, 600)
	c.Ease(Pointer{X: 0.4, Y: 0.2})
	pos := c.Position
	before := c.Projection()

	if err := c.Resize(600, 800); err != nil {
		t.Fatalf("resize failed: %v", err)
	}

	if c.Position != pos {
		t.Errorf("resize moved camera: %v -> %v", pos, c.Position)
	}
	if math.Abs(c.Aspect-0.75) > 1e-12 {
		t.Errorf("expected aspect 0.75, got %f", c.Aspect)
	}
	after := c.Projection()
	if cmp.Equal(before, after) {
		t.Error("projection matrix should change with the aspect ratio")
	}
	if before[5] != after[5] {
		t.Errorf("vertical focal length should not depend on aspect: %f vs %f", before[5], after[5])
	}

	if err := c.Resize(0, 100); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
	if math.Abs(c.Aspect-0.75) > 1e-12 {
		t.Errorf("rejected resize changed aspect to %f", c.Aspect)
	}
}

func TestProject(t *testing.T) {
	c, _ := New(DefaultParams(), 100, 100)

	x, y, depth, ok := c.Project(geom.Vec3{}, 100, 100)
	if !ok || x != 50 || y != 50 {
		t.Errorf("origin should project to center, got (%d,%d) visible=%v", x, y, ok)
	}
	if math.Abs(depth-10) > 1e-12 {
		t.Errorf("expected depth 10, got %f", depth)
	}

	rx, _, _, _ := c.Project(geom.Vec3{X: 1}, 100, 100)
	_, uy, _, _ := c.Project(geom.Vec3{Y: 1}, 100, 100)
	if rx <= 50 {
		t.Errorf("+x should land right of center, got %d", rx)
	}
	if uy >= 50 {
		t.Errorf("+y should land above center, got %d", uy)
	}

	if _, _, _, ok := c.Project(geom.Vec3{Z: 20}, 100, 100); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestPointerFromPixels(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		expected Pointer
	}{
		{"center", 50, 50, Pointer{0, 0}},
		{"top left", 0, 0, Pointer{-1, 1}},
		{"bottom right", 100, 100, Pointer{1, -1}},
		{"outside clamps", 250, -40, Pointer{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointerFromPixels(tt.px, tt.py, 100, 100)
			if !cmp.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if got := PointerFromPixels(10, 10, 0, 0); got != (Pointer{}) {
		t.Errorf("empty surface should give centered pointer, got %v", got)
	}
}
