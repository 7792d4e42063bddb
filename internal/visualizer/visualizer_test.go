package visualizer_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/geom"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
)

func testConfig() visualizer.Config {
	cfg := visualizer.DefaultConfig()
	cfg.Seed = 1234
	return cfg
}

var _ = Describe("Visualizer", func() {
	var (
		surface *eventSurface
		sched   *visualizer.StepScheduler
		vis     *visualizer.Visualizer
	)

	BeforeEach(func() {
		surface = &eventSurface{}
		sched = visualizer.NewStepScheduler()
		var err error
		vis, err = visualizer.New(surface, 800, 600, testConfig(), visualizer.WithScheduler(sched))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("reports a missing surface as a configuration error", func() {
			v, err := visualizer.New(nil, 800, 600, testConfig())
			Expect(v).To(BeNil())
			Expect(err).To(MatchError(visualizer.ErrSurfaceNotFound))

			var cfgErr *visualizer.ConfigError
			Expect(err).To(BeAssignableToTypeOf(cfgErr))
		})

		It("rejects an empty viewport", func() {
			_, err := visualizer.New(surface, 0, 600, testConfig())
			Expect(err).To(MatchError(camera.ErrInvalidViewport))
		})

		It("rejects invalid network parameters", func() {
			cfg := testConfig()
			cfg.Network.ConnectionProbability = 2
			_, err := visualizer.New(surface, 800, 600, cfg)
			Expect(err).To(MatchError(network.ErrParameterBounds))
		})

		It("uses the configured node count", func() {
			Expect(vis.Snapshot().Positions).To(HaveLen(network.DefaultNodeCount))
		})

		It("builds the same network for the same seed", func() {
			other, err := visualizer.New(&recordingSurface{}, 800, 600, testConfig(), visualizer.WithScheduler(visualizer.NewStepScheduler()))
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Snapshot()).To(Equal(vis.Snapshot()))
		})

		It("starts stopped and renders nothing", func() {
			Expect(vis.State()).To(Equal(visualizer.Stopped))
			Expect(sched.Pending()).To(BeFalse())
			Expect(surface.renders).To(BeZero())
		})
	})

	Describe("the frame loop", func() {
		It("renders once per tick while running", func() {
			Expect(vis.Start(context.Background())).To(Succeed())
			Expect(vis.State()).To(Equal(visualizer.Running))

			for i := 0; i < 5; i++ {
				Expect(sched.Tick()).To(BeTrue())
			}
			Expect(surface.renders).To(Equal(5))
			Expect(vis.Frames()).To(BeEquivalentTo(5))
			Expect(sched.Pending()).To(BeTrue())
		})

		It("refuses to start twice", func() {
			Expect(vis.Start(context.Background())).To(Succeed())
			Expect(vis.Start(context.Background())).To(MatchError(visualizer.ErrAlreadyRunning))
		})

		It("cancels the pending frame and releases listeners on stop", func() {
			Expect(vis.Start(context.Background())).To(Succeed())
			Expect(surface.handler).NotTo(BeNil())
			sched.Tick()

			vis.Stop()
			Expect(vis.State()).To(Equal(visualizer.Stopped))
			Expect(sched.Pending()).To(BeFalse())
			Expect(sched.Tick()).To(BeFalse())
			Expect(surface.renders).To(Equal(1))
			Expect(surface.released).To(Equal(1))

			vis.Stop()
			Expect(surface.released).To(Equal(1))
		})

		It("can be restarted after stopping", func() {
			Expect(vis.Start(context.Background())).To(Succeed())
			sched.Tick()
			vis.Stop()
			Expect(vis.Start(context.Background())).To(Succeed())
			sched.Tick()
			Expect(surface.renders).To(Equal(2))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			Expect(vis.Start(ctx)).To(Succeed())
			cancel()

			Eventually(vis.State).Should(Equal(visualizer.Stopped))
			Expect(sched.Tick()).To(BeFalse())
			Expect(surface.released).To(Equal(1))
		})

		It("does not start on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(vis.Start(ctx)).To(MatchError(context.Canceled))
			Expect(vis.State()).To(Equal(visualizer.Stopped))
		})

		It("steps frames without the loop running", func() {
			vis.Frame()
			vis.Frame()
			Expect(vis.Frames()).To(BeEquivalentTo(2))
			Expect(vis.State()).To(Equal(visualizer.Stopped))
		})
	})

	Describe("pointer input", func() {
		It("eases the camera toward the pointer", func() {
			Expect(vis.Start(context.Background())).To(Succeed())
			surface.handler.PointerMove(800, 0)
			Expect(vis.Pointer()).To(Equal(camera.Pointer{X: 1, Y: 1}))

			prev := vis.Camera().Position.Distance(geom.Vec3{X: 0.5, Y: 0.5, Z: 10})
			for i := 0; i < 50; i++ {
				sched.Tick()
				d := vis.Camera().Position.Distance(geom.Vec3{X: 0.5, Y: 0.5, Z: 10})
				Expect(d).To(BeNumerically("<", prev))
				prev = d
			}
			Expect(surface.camera.Position.X).To(BeNumerically(">", 0))
		})

		It("recentres the pointer when it leaves", func() {
			vis.SetPointer(camera.Pointer{X: -3, Y: 0.25})
			Expect(vis.Pointer()).To(Equal(camera.Pointer{X: -1, Y: 0.25}))
			vis.PointerLeave()
			Expect(vis.Pointer()).To(Equal(camera.Pointer{}))
		})
	})

	Describe("resize", func() {
		It("changes only the projection", func() {
			before := vis.Snapshot()
			oldCam := vis.Camera()

			vis.Resize(1920, 1080)

			Expect(vis.Snapshot()).To(Equal(before))
			cam := vis.Camera()
			Expect(cam.Aspect).To(BeNumerically("~", 1920.0/1080.0, 1e-12))
			Expect(cam.Position).To(Equal(oldCam.Position))
			Expect(cam.Projection()).NotTo(Equal(oldCam.Projection()))
			w, h := vis.Viewport()
			Expect([]int{w, h}).To(Equal([]int{1920, 1080}))
		})

		It("ignores an empty viewport", func() {
			vis.Resize(0, 0)
			w, h := vis.Viewport()
			Expect([]int{w, h}).To(Equal([]int{800, 600}))
		})
	})

	Describe("a hand-built network", func() {
		It("renders fixed endpoints for stationary nodes", func() {
			p := network.DefaultParams()
			p.ConnectionProbability = 1
			net, err := network.Connect([]network.Node{
				{Position: geom.Vec3{}},
				{Position: geom.Vec3{X: 1}},
			}, p, rand.New(rand.NewSource(1)))
			Expect(err).NotTo(HaveOccurred())

			s := &recordingSurface{}
			v, err := visualizer.New(s, 100, 100, testConfig(), visualizer.WithNetwork(net))
			Expect(err).NotTo(HaveOccurred())
			v.Frame()

			Expect(s.segments).To(Equal([]network.Segment{{Start: geom.Vec3{}, End: geom.Vec3{X: 1}}}))
		})
	})

	Describe("observers", func() {
		It("are told about every frame before rendering", func() {
			obs := &countingObserver{surface: surface}
			v, err := visualizer.New(surface, 800, 600, testConfig(),
				visualizer.WithScheduler(sched), visualizer.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())
			v.Frame()
			v.Frame()
			Expect(obs.frames).To(Equal([]uint64{1, 2}))
			Expect(obs.rendersSeen).To(Equal([]int{0, 1}))
		})
	})
})

type countingObserver struct {
	surface     *eventSurface
	frames      []uint64
	rendersSeen []int
}

func (o *countingObserver) OnFrame(frame uint64, _ *network.Network, _ *camera.Camera) {
	o.frames = append(o.frames, frame)
	o.rendersSeen = append(o.rendersSeen, o.surface.renders)
}
