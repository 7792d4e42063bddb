package metrics

import (
	"math"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
)

// BoundaryOvershoot tracks the furthest any node has been seen outside the
// box, in world units.
type BoundaryOvershoot struct {
	name string
	max  float64
}

func NewBoundaryOvershoot() *BoundaryOvershoot {
	return &BoundaryOvershoot{name: "boundary_overshoot"}
}

func (b *BoundaryOvershoot) Name() string { return b.name }

func (b *BoundaryOvershoot) Observe(net *network.Network, _ *camera.Camera) {
	for _, n := range net.Nodes {
		for axis := 0; axis < 3; axis++ {
			over := math.Abs(n.Position.Axis(axis)) - net.Bounds.Axis(axis)
			b.max = math.Max(b.max, over)
		}
	}
}

func (b *BoundaryOvershoot) Value() float64 { return b.max }

func (b *BoundaryOvershoot) Reset() { b.max = 0 }
