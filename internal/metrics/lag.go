package metrics

import (
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
)

// CameraLag is the distance between the camera and the point it is easing
// toward.
type CameraLag struct {
	name string
	lag  float64
}

func NewCameraLag() *CameraLag { return &CameraLag{name: "camera_lag"} }

func (c *CameraLag) Name() string { return c.name }

func (c *CameraLag) Observe(_ *network.Network, cam *camera.Camera) {
	c.lag = cam.Position.Distance(cam.Goal())
}

func (c *CameraLag) Value() float64 { return c.lag }
func (c *CameraLag) Reset()         { c.lag = 0 }
