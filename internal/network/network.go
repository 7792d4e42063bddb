package network

import (
	"fmt"

	"github.com/san-kum/nodemesh/internal/geom"
)

// Rand is the subset of *rand.Rand the network samples from.
type Rand interface {
	Float64() float64
}

type Node struct {
	Position geom.Vec3
	Velocity geom.Vec3
}

// Connection joins two nodes by index. A < B always holds.
type Connection struct {
	A, B int
}

// Segment is a connection resolved to world-space endpoints.
type Segment struct {
	Start, End geom.Vec3
}

func (s Segment) Length() float64 { return s.Start.Distance(s.End) }

type Network struct {
	Nodes       []Node
	Connections []Connection
	Bounds      geom.Vec3
	Radius      float64

	initialLengths []float64
}

// Generate samples p.NodeCount nodes uniformly inside the bounds and then
// connects them with Connect.
func Generate(p Params, rng Rand) (*Network, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	nodes := make([]Node, p.NodeCount)
	for i := range nodes {
		nodes[i] = Node{
			Position: geom.Vec3{
				X: uniform(rng, p.Bounds.X),
				Y: uniform(rng, p.Bounds.Y),
				Z: uniform(rng, p.Bounds.Z),
			},
			Velocity: geom.Vec3{
				X: uniform(rng, p.MaxSpeed),
				Y: uniform(rng, p.MaxSpeed),
				Z: uniform(rng, p.MaxSpeed),
			},
		}
	}
	return Connect(nodes, p, rng)
}

// Connect builds a network over the given nodes. Every unordered pair
// consumes exactly one probability draw, in (i, j) index order, whether or
// not it is close enough; a pair is connected only when the draw passes
// and its distance is below p.MaxConnectionDistance.
func Connect(nodes []Node, p Params, rng Rand) (*Network, error) {
	p.NodeCount = len(nodes)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := &Network{
		Nodes:  nodes,
		Bounds: p.Bounds,
		Radius: p.NodeRadius,
	}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			draw := rng.Float64()
			if draw >= p.ConnectionProbability {
				continue
			}
			d := nodes[i].Position.Distance(nodes[j].Position)
			if d >= p.MaxConnectionDistance {
				continue
			}
			n.Connections = append(n.Connections, Connection{A: i, B: j})
			n.initialLengths = append(n.initialLengths, d)
		}
	}
	return n, nil
}

// AddConnection links two existing nodes regardless of distance.
func (n *Network) AddConnection(a, b int) error {
	if a < 0 || b < 0 || a >= len(n.Nodes) || b >= len(n.Nodes) || a == b {
		return fmt.Errorf("connect %d-%d: %w", a, b, ErrNodeIndex)
	}
	if a > b {
		a, b = b, a
	}
	n.Connections = append(n.Connections, Connection{A: a, B: b})
	n.initialLengths = append(n.initialLengths, n.Nodes[a].Position.Distance(n.Nodes[b].Position))
	return nil
}

// Step advances every node by its velocity and reflects the velocity on
// each axis that left the box. The position itself is not clamped, so a
// node may sit up to one step outside the bounds for a frame.
func (n *Network) Step() {
	for i := range n.Nodes {
		node := &n.Nodes[i]
		node.Position = node.Position.Add(node.Velocity)
		for axis := 0; axis < 3; axis++ {
			bound := n.Bounds.Axis(axis)
			if p := node.Position.Axis(axis); p > bound || p < -bound {
				node.Velocity = node.Velocity.WithAxis(axis, -node.Velocity.Axis(axis))
			}
		}
	}
}

func (n *Network) Segment(i int) Segment {
	c := n.Connections[i]
	return Segment{Start: n.Nodes[c.A].Position, End: n.Nodes[c.B].Position}
}

// Segments appends the current segment of every connection to dst.
func (n *Network) Segments(dst []Segment) []Segment {
	dst = dst[:0]
	for i := range n.Connections {
		dst = append(dst, n.Segment(i))
	}
	return dst
}

// InitialLength is the distance between a connection's endpoints when it
// was created.
func (n *Network) InitialLength(i int) float64 { return n.initialLengths[i] }

// Snapshot is a deep copy of the mutable network state.
type Snapshot struct {
	Positions  []geom.Vec3
	Velocities []geom.Vec3
	Segments   []Segment
}

func (n *Network) Snapshot() Snapshot {
	s := Snapshot{
		Positions:  make([]geom.Vec3, len(n.Nodes)),
		Velocities: make([]geom.Vec3, len(n.Nodes)),
		Segments:   n.Segments(make([]Segment, 0, len(n.Connections))),
	}
	for i, node := range n.Nodes {
		s.Positions[i] = node.Position
		s.Velocities[i] = node.Velocity
	}
	return s
}

func uniform(rng Rand, half float64) float64 {
	return (rng.Float64() - 0.5) * 2 * half
}
