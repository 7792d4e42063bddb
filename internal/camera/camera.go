package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/nodemesh/internal/geom"
)

const (
	DefaultFOV       = 75.0
	DefaultNear      = 0.1
	DefaultFar       = 1000.0
	DefaultDepth     = 10.0
	DefaultSmoothing = 0.05
	DefaultParallax  = 0.5
)

var (
	ErrInvalidViewport = errors.New("camera: viewport must be positive")
	ErrInvalidParams   = errors.New("camera: invalid parameters")
)

// Params configures the perspective and the pointer parallax.
type Params struct {
	FOV       float64 // vertical field of view, degrees
	Near, Far float64
	Depth     float64 // resting z of the camera
	Smoothing float64 // fraction of the remaining distance covered per frame
	Parallax  float64 // world units of offset at pointer = ±1
}

func DefaultParams() Params {
	return Params{
		FOV:       DefaultFOV,
		Near:      DefaultNear,
		Far:       DefaultFar,
		Depth:     DefaultDepth,
		Smoothing: DefaultSmoothing,
		Parallax:  DefaultParallax,
	}
}

func (p Params) Validate() error {
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("%w: fov %g", ErrInvalidParams, p.FOV)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("%w: near %g far %g", ErrInvalidParams, p.Near, p.Far)
	}
	if p.Depth <= 0 {
		return fmt.Errorf("%w: depth %g", ErrInvalidParams, p.Depth)
	}
	if p.Smoothing < 0 || p.Smoothing > 1 {
		return fmt.Errorf("%w: smoothing %g", ErrInvalidParams, p.Smoothing)
	}
	return nil
}

// Camera is a perspective camera looking at a fixed target. Its position
// eases toward a pointer-derived goal every frame.
type Camera struct {
	Position, Target, Up geom.Vec3
	FOV, Aspect          float64
	Near, Far            float64
	Params               Params

	goal geom.Vec3
	proj [16]float64
}

func New(p Params, width, height int) (*Camera, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	c := &Camera{
		Position: geom.Vec3{Z: p.Depth},
		Up:       geom.Vec3{Y: 1},
		FOV:      p.FOV,
		Near:     p.Near,
		Far:      p.Far,
		Params:   p,
		goal:     geom.Vec3{Z: p.Depth},
	}
	c.setAspect(width, height)
	return c, nil
}

// Ease moves the camera Smoothing of the way toward the point the pointer
// asks for. Repeated calls converge geometrically with ratio 1-Smoothing.
func (c *Camera) Ease(ptr Pointer) {
	c.goal = geom.Vec3{
		X: ptr.X * c.Params.Parallax,
		Y: ptr.Y * c.Params.Parallax,
		Z: c.Params.Depth,
	}
	c.Position = c.Position.Lerp(c.goal, c.Params.Smoothing)
}

// Goal is the target of the most recent Ease.
func (c *Camera) Goal() geom.Vec3 { return c.goal }

// Resize updates the aspect ratio and projection. Position is untouched.
func (c *Camera) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	c.setAspect(width, height)
	return nil
}

func (c *Camera) setAspect(width, height int) {
	c.Aspect = float64(width) / float64(height)
	c.updateProjection()
}

// updateProjection caches the column-major perspective matrix.
func (c *Camera) updateProjection() {
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	nf := 1 / (c.Near - c.Far)
	c.proj = [16]float64{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (c.Far + c.Near) * nf, -1,
		0, 0, 2 * c.Far * c.Near * nf, 0,
	}
}

// Projection returns the cached column-major projection matrix.
func (c *Camera) Projection() [16]float64 { return c.proj }

// basis returns the camera's right, up and forward axes.
func (c *Camera) basis() (right, up, fwd geom.Vec3) {
	fwd = c.Target.Sub(c.Position).Normalize()
	right = fwd.Cross(c.Up).Normalize()
	up = right.Cross(fwd)
	return right, up, fwd
}

// View transforms a world point into camera space. The returned z is the
// distance in front of the camera.
func (c *Camera) View(p geom.Vec3) geom.Vec3 {
	right, up, fwd := c.basis()
	d := p.Sub(c.Position)
	return geom.Vec3{X: d.Dot(right), Y: d.Dot(up), Z: d.Dot(fwd)}
}

// Project maps a world point onto a sw x sh pixel surface.
// Returns x, y, view depth and visibility.
func (c *Camera) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.View(p)
	if v.Z < c.Near || v.Z > c.Far {
		return 0, 0, v.Z, false
	}
	ndcX := c.proj[0] * v.X / v.Z
	ndcY := c.proj[5] * v.Y / v.Z
	sx := int(math.Round((ndcX + 1) / 2 * float64(sw)))
	sy := int(math.Round((1 - ndcY) / 2 * float64(sh)))
	return sx, sy, v.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Clipped reports whether a view depth falls outside the near/far range.
func (c *Camera) Clipped(depth float64) bool {
	return depth < c.Near || depth > c.Far
}

// PixelScale is the on-screen size in pixels of one world unit at the
// given view depth.
func (c *Camera) PixelScale(depth float64, sh int) float64 {
	if depth <= 0 {
		return 0
	}
	return c.proj[5] / depth * float64(sh) / 2
}
