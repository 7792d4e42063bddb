package viz

import (
	"math"
	"sort"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
)

type projected struct {
	x1, y1, x2, y2 int
	radius         int
	depth          float64
	ink            Ink
}

// RenderNetwork draws the network onto the canvas from the camera's point
// of view using a painter's algorithm: far primitives first.
func RenderNetwork(c *Canvas, net *network.Network, cam *camera.Camera) {
	if c == nil || net == nil || cam == nil {
		return
	}
	sw, sh := c.PixelSize()
	items := make([]projected, 0, len(net.Connections)+len(net.Nodes))

	for i := range net.Connections {
		seg := net.Segment(i)
		x1, y1, d1, v1 := cam.Project(seg.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(seg.End, sw, sh)
		if cam.Clipped(d1) || cam.Clipped(d2) || !(v1 || v2) {
			continue
		}
		items = append(items, projected{x1, y1, x2, y2, 0, (d1 + d2) / 2, InkLine})
	}

	for _, n := range net.Nodes {
		x, y, d, ok := cam.Project(n.Position, sw, sh)
		if !ok {
			continue
		}
		r := int(math.Round(cam.PixelScale(d, sh) * net.Radius))
		items = append(items, projected{x, y, x, y, r, d, InkNode})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		if it.ink == InkNode {
			c.DrawDisc(it.x1, it.y1, it.radius, InkNode)
		} else {
			c.DrawLine(it.x1, it.y1, it.x2, it.y2, InkLine)
		}
	}
}
