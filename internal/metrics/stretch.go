package metrics

import (
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
)

// ConnectionStretch is the mean current length of all connections relative
// to their mean length at creation. 1 means unchanged.
type ConnectionStretch struct {
	name    string
	current float64
}

func NewConnectionStretch() *ConnectionStretch {
	return &ConnectionStretch{name: "connection_stretch", current: 1}
}

func (c *ConnectionStretch) Name() string { return c.name }

func (c *ConnectionStretch) Observe(net *network.Network, _ *camera.Camera) {
	if len(net.Connections) == 0 {
		return
	}
	var now, initial float64
	for i := range net.Connections {
		now += net.Segment(i).Length()
		initial += net.InitialLength(i)
	}
	if initial == 0 {
		return
	}
	c.current = now / initial
}

func (c *ConnectionStretch) Value() float64 { return c.current }
func (c *ConnectionStretch) Reset()         { c.current = 1 }
