package headless

import (
	"context"
	"fmt"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/geom"
	"github.com/san-kum/nodemesh/internal/metrics"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"go.uber.org/zap"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Result summarises one run.
type Result struct {
	Seed        int64
	Frames      uint64
	Nodes       int
	Connections int
	Links       [][2]int
	Metrics     map[string]float64
	Series      map[string][]float64
	Final       network.Snapshot
	Camera      geom.Vec3
	Trails      [][]geom.Vec3

	// Net and View are the final network and camera, for drawing.
	Net  *network.Network
	View camera.Camera
}

// Runner configures headless runs. The zero value runs no frames.
type Runner struct {
	Frames int
	Width  int
	Height int

	// Pointer is held for the whole run.
	Pointer camera.Pointer
	// Trails records every node position once per frame.
	Trails bool
	// NewMetrics builds fresh metrics for each run.
	NewMetrics func() []metrics.Metric
	Logger     *zap.Logger
}

// Run steps a visualizer for frames frames with the given metrics.
func Run(ctx context.Context, cfg visualizer.Config, frames int, ms ...metrics.Metric) (*Result, error) {
	r := Runner{Frames: frames, NewMetrics: func() []metrics.Metric { return ms }}
	return r.Run(ctx, cfg)
}

// recorder is the surface of a headless run.
type recorder struct {
	trails [][]geom.Vec3
	keep   bool
}

func (s *recorder) Render(net *network.Network, _ *camera.Camera) {
	if !s.keep {
		return
	}
	if s.trails == nil {
		s.trails = make([][]geom.Vec3, len(net.Nodes))
	}
	for i, n := range net.Nodes {
		s.trails[i] = append(s.trails[i], n.Position)
	}
}

func (r Runner) Run(ctx context.Context, cfg visualizer.Config) (*Result, error) {
	if r.Frames < 0 {
		return nil, fmt.Errorf("headless: negative frame count %d", r.Frames)
	}
	w, h := r.Width, r.Height
	if w == 0 && h == 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var ms []metrics.Metric
	if r.NewMetrics != nil {
		ms = r.NewMetrics()
	}

	surface := &recorder{keep: r.Trails}
	sched := visualizer.NewStepScheduler()
	rec := metrics.NewRecorder(r.Frames, ms...)
	vis, err := visualizer.New(surface, w, h, cfg,
		visualizer.WithScheduler(sched),
		visualizer.WithObserver(rec),
		visualizer.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	vis.SetPointer(r.Pointer)

	if err := vis.Start(ctx); err != nil {
		return nil, err
	}
	defer vis.Stop()
	for i := 0; i < r.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sched.Tick() {
			// cancelled between the check and the tick
			return nil, ctx.Err()
		}
	}

	net := vis.Network()
	res := &Result{
		Seed:        cfg.Seed,
		Frames:      vis.Frames(),
		Nodes:       len(net.Nodes),
		Connections: len(net.Connections),
		Metrics:     rec.Values(),
		Series:      make(map[string][]float64, len(ms)),
		Final:       vis.Snapshot(),
		Camera:      vis.Camera().Position,
		Net:         net,
		View:        vis.Camera(),
		Trails:      surface.trails,
		Links:       make([][2]int, len(net.Connections)),
	}
	for i, c := range net.Connections {
		res.Links[i] = [2]int{c.A, c.B}
	}
	for _, m := range ms {
		res.Series[m.Name()] = rec.History(m.Name())
	}
	logger.Debug("headless run finished",
		zap.Int64("seed", cfg.Seed),
		zap.Uint64("frames", res.Frames),
		zap.Int("connections", res.Connections))
	return res, nil
}
