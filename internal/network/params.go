package network

import "github.com/san-kum/nodemesh/internal/geom"

const (
	DefaultNodeCount             = 50
	DefaultNodeRadius            = 0.1
	DefaultConnectionProbability = 0.1
	DefaultMaxConnectionDistance = 5.0
	DefaultMaxSpeed              = 0.005
)

// DefaultBounds are the half-extents of the 20 x 15 x 10 box.
var DefaultBounds = geom.Vec3{X: 10, Y: 7.5, Z: 5}

// Params configures node sampling and connection filtering.
type Params struct {
	NodeCount             int
	Bounds                geom.Vec3 // half-extents per axis
	MaxSpeed              float64   // per-axis velocity range is [-MaxSpeed, MaxSpeed]
	ConnectionProbability float64
	MaxConnectionDistance float64
	NodeRadius            float64
}

func DefaultParams() Params {
	return Params{
		NodeCount:             DefaultNodeCount,
		Bounds:                DefaultBounds,
		MaxSpeed:              DefaultMaxSpeed,
		ConnectionProbability: DefaultConnectionProbability,
		MaxConnectionDistance: DefaultMaxConnectionDistance,
		NodeRadius:            DefaultNodeRadius,
	}
}

func (p Params) Validate() error {
	switch {
	case p.NodeCount < 0:
		return &ParamError{Param: "node_count", Value: float64(p.NodeCount), Wrapped: ErrParameterBounds}
	case p.Bounds.X <= 0:
		return &ParamError{Param: "bounds.x", Value: p.Bounds.X, Wrapped: ErrParameterBounds}
	case p.Bounds.Y <= 0:
		return &ParamError{Param: "bounds.y", Value: p.Bounds.Y, Wrapped: ErrParameterBounds}
	case p.Bounds.Z <= 0:
		return &ParamError{Param: "bounds.z", Value: p.Bounds.Z, Wrapped: ErrParameterBounds}
	case p.MaxSpeed < 0:
		return &ParamError{Param: "max_speed", Value: p.MaxSpeed, Wrapped: ErrParameterBounds}
	case p.ConnectionProbability < 0 || p.ConnectionProbability > 1:
		return &ParamError{Param: "connection_probability", Value: p.ConnectionProbability, Wrapped: ErrParameterBounds}
	case p.MaxConnectionDistance <= 0:
		return &ParamError{Param: "max_connection_distance", Value: p.MaxConnectionDistance, Wrapped: ErrParameterBounds}
	case p.NodeRadius < 0:
		return &ParamError{Param: "node_radius", Value: p.NodeRadius, Wrapped: ErrParameterBounds}
	}
	return nil
}
