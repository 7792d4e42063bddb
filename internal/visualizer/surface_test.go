package visualizer_test

import (
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
)

// recordingSurface counts renders and keeps the last frame's segments.
type recordingSurface struct {
	renders  int
	segments []network.Segment
	camera   camera.Camera
}

func (s *recordingSurface) Render(net *network.Network, cam *camera.Camera) {
	s.renders++
	s.segments = net.Segments(s.segments)
	s.camera = *cam
}

// eventSurface also hands out subscriptions.
type eventSurface struct {
	recordingSurface
	handler  visualizer.InputHandler
	released int
}

func (s *eventSurface) Subscribe(h visualizer.InputHandler) func() {
	s.handler = h
	return func() {
		s.handler = nil
		s.released++
	}
}
