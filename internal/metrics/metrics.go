package metrics

import (
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
)

// Metric accumulates a scalar over observed frames.
type Metric interface {
	Name() string
	Observe(net *network.Network, cam *camera.Camera)
	Value() float64
	Reset()
}

// Recorder feeds metrics from the visualizer's frame hook and keeps the
// last Capacity values of each for charting.
type Recorder struct {
	Capacity int

	metrics []Metric
	history map[string][]float64
}

func NewRecorder(capacity int, ms ...Metric) *Recorder {
	r := &Recorder{
		Capacity: capacity,
		metrics:  ms,
		history:  make(map[string][]float64, len(ms)),
	}
	return r
}

func (r *Recorder) OnFrame(_ uint64, net *network.Network, cam *camera.Camera) {
	for _, m := range r.metrics {
		m.Observe(net, cam)
		h := append(r.history[m.Name()], m.Value())
		if r.Capacity > 0 && len(h) > r.Capacity {
			h = h[len(h)-r.Capacity:]
		}
		r.history[m.Name()] = h
	}
}

func (r *Recorder) Metrics() []Metric { return r.metrics }

// History returns the recorded series for the named metric.
func (r *Recorder) History(name string) []float64 { return r.history[name] }

// Values returns the current value of every metric by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
	clear(r.history)
}

// Standard returns one of each built-in metric.
func Standard() []Metric {
	return []Metric{NewConnectionStretch(), NewBoundaryOvershoot(), NewCameraLag()}
}
