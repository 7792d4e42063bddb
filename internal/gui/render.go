package gui

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/geom"
	"github.com/san-kum/nodemesh/internal/network"
)

const (
	sphereRings  = 16
	sphereSlices = 16
)

func toVector3(v geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// toCamera3D mirrors the scene camera. Raylib's Fovy is the vertical field
// of view in degrees, the same convention the camera package uses.
func toCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}

// colorFromHex parses "#rrggbb" with the given opacity in [0,1]. Malformed
// input yields fallback.
func colorFromHex(hex string, alpha float64, fallback rl.Color) rl.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return fallback
	}
	alpha = max(0, min(alpha, 1))
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), uint8(alpha*255+0.5))
}

// drawNetwork issues the draw calls for one frame. It must run between
// BeginMode3D and EndMode3D.
func drawNetwork(net *network.Network, node, line rl.Color) {
	for i := range net.Connections {
		seg := net.Segment(i)
		rl.DrawLine3D(toVector3(seg.Start), toVector3(seg.End), line)
	}
	radius := float32(net.Radius)
	for _, n := range net.Nodes {
		rl.DrawSphereEx(toVector3(n.Position), radius, sphereRings, sphereSlices, node)
	}
}
