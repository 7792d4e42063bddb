package visualizer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/network"
	"go.uber.org/zap"
)

// Surface is anything a frame can be drawn onto.
type Surface interface {
	Render(net *network.Network, cam *camera.Camera)
}

// InputHandler receives host events. Pixel coordinates are relative to the
// surface's top-left corner.
type InputHandler interface {
	PointerMove(px, py float64)
	PointerLeave()
	Resize(width, height int)
}

// EventSource is implemented by surfaces that deliver input events.
// The returned func unsubscribes.
type EventSource interface {
	Subscribe(h InputHandler) (release func())
}

// Observer is notified after every frame's update, before rendering.
type Observer interface {
	OnFrame(frame uint64, net *network.Network, cam *camera.Camera)
}

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

type Config struct {
	Network network.Params
	Camera  camera.Params
	Seed    int64
}

func DefaultConfig() Config {
	return Config{
		Network: network.DefaultParams(),
		Camera:  camera.DefaultParams(),
		Seed:    time.Now().UnixNano(),
	}
}

type Visualizer struct {
	mu sync.Mutex

	net     *network.Network
	cam     *camera.Camera
	pointer camera.Pointer
	width   int
	height  int
	frames  uint64

	surface   Surface
	sched     Scheduler
	observers []Observer
	logger    *zap.Logger

	state      State
	run        uint64 // bumped by Start and Stop
	cancel     func()
	release    func()
	stopOnDone func() bool
}

type options struct {
	logger    *zap.Logger
	sched     Scheduler
	rng       network.Rand
	net       *network.Network
	observers []Observer
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

func WithScheduler(s Scheduler) Option { return func(o *options) { o.sched = s } }

// WithRand overrides the seeded source used to build the network.
func WithRand(r network.Rand) Option { return func(o *options) { o.rng = r } }

// WithNetwork uses a pre-built network instead of generating one.
func WithNetwork(n *network.Network) Option { return func(o *options) { o.net = n } }

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// New builds a visualizer for surface. A nil surface yields a *ConfigError
// wrapping ErrSurfaceNotFound; the caller should report it and carry on
// without the background.
func New(surface Surface, width, height int, cfg Config, opts ...Option) (*Visualizer, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if surface == nil {
		return nil, &ConfigError{Field: "surface", Wrapped: ErrSurfaceNotFound}
	}

	cam, err := camera.New(cfg.Camera, width, height)
	if err != nil {
		return nil, &ConfigError{Field: "camera", Wrapped: err}
	}

	net := o.net
	if net == nil {
		rng := o.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(cfg.Seed))
		}
		net, err = network.Generate(cfg.Network, rng)
		if err != nil {
			return nil, &ConfigError{Field: "network", Wrapped: err}
		}
	}

	sched := o.sched
	if sched == nil {
		sched = NewTickerScheduler(60)
	}

	o.logger.Debug("visualizer created",
		zap.Int("nodes", len(net.Nodes)),
		zap.Int("connections", len(net.Connections)),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int64("seed", cfg.Seed))

	return &Visualizer{
		net:       net,
		cam:       cam,
		width:     width,
		height:    height,
		surface:   surface,
		sched:     sched,
		observers: o.observers,
		logger:    o.logger,
	}, nil
}

// Start moves Stopped -> Running: it subscribes to surface events and
// requests the first frame. Cancelling ctx stops the loop.
func (v *Visualizer) Start(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Running {
		return ErrAlreadyRunning
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	v.state = Running
	v.run++
	if src, ok := v.surface.(EventSource); ok {
		v.release = src.Subscribe(v)
	}
	v.schedule()
	v.stopOnDone = context.AfterFunc(ctx, v.Stop)
	v.logger.Debug("visualizer started")
	return nil
}

// Stop moves Running -> Stopped, cancelling the pending frame and
// releasing event subscriptions. Stopping a stopped visualizer is a no-op.
func (v *Visualizer) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Stopped {
		return
	}
	v.state = Stopped
	v.run++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.release != nil {
		v.release()
		v.release = nil
	}
	if v.stopOnDone != nil {
		v.stopOnDone()
		v.stopOnDone = nil
	}
	v.logger.Debug("visualizer stopped", zap.Uint64("frames", v.frames))
}

// schedule requests the next frame for the current run. v.mu must be held.
func (v *Visualizer) schedule() {
	run := v.run
	v.cancel = v.sched.RequestFrame(func() { v.tick(run) })
}

// tick is the scheduled frame callback. A callback from an earlier run,
// one that fired just before a Stop and lost the lock to a later Start,
// is dropped.
func (v *Visualizer) tick(run uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Running || run != v.run {
		return
	}
	v.frame()
	v.schedule()
}

// Frame runs one frame synchronously, whether or not the loop is running.
func (v *Visualizer) Frame() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frame()
}

func (v *Visualizer) frame() {
	v.cam.Ease(v.pointer)
	v.net.Step()
	v.frames++
	for _, o := range v.observers {
		o.OnFrame(v.frames, v.net, v.cam)
	}
	v.surface.Render(v.net, v.cam)
}

func (v *Visualizer) PointerMove(px, py float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = camera.PointerFromPixels(px, py, v.width, v.height)
}

// SetPointer sets an already normalized pointer position.
func (v *Visualizer) SetPointer(p camera.Pointer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = p.Clamp()
}

func (v *Visualizer) PointerLeave() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = camera.Pointer{}
}

// Resize updates the viewport and the camera projection. Node and
// connection state is not touched. Non-positive sizes are ignored.
func (v *Visualizer) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.cam.Resize(width, height); err != nil {
		v.logger.Debug("ignoring resize", zap.Error(err))
		return
	}
	v.width, v.height = width, height
}

func (v *Visualizer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Visualizer) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

func (v *Visualizer) Snapshot() network.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.net.Snapshot()
}

// Camera returns a copy of the camera.
func (v *Visualizer) Camera() camera.Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return *v.cam
}

func (v *Visualizer) Pointer() camera.Pointer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pointer
}

func (v *Visualizer) Viewport() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Size returns the node and connection counts.
func (v *Visualizer) Size() (nodes, connections int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.net.Nodes), len(v.net.Connections)
}

// Network exposes the live network without locking. It is only safe to
// read between frames driven by a StepScheduler on the caller's goroutine;
// with a TickerScheduler use Snapshot instead. Callers must not mutate it.
func (v *Visualizer) Network() *network.Network {
	return v.net
}
