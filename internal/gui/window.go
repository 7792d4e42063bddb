package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"go.uber.org/zap"
)

var (
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
)

// Window is a raylib surface. Everything, the visualizer's frames
// included, runs on the thread that opened the window.
type Window struct {
	cfg    *config.Config
	logger *zap.Logger

	vis     *visualizer.Visualizer
	sched   *visualizer.StepScheduler
	handler visualizer.InputHandler

	net   *network.Network
	cam3d rl.Camera3D

	bg, node, line rl.Color
	seed           int64
	inside         bool
	lastMouse      rl.Vector2
}

func newWindow(cfg *config.Config, logger *zap.Logger) *Window {
	green := rl.NewColor(0, 223, 129, 255)
	return &Window{
		cfg:    cfg,
		logger: logger,
		sched:  visualizer.NewStepScheduler(),
		bg:     colorFromHex(cfg.Style.Background, 1, rl.NewColor(10, 10, 10, 255)),
		node:   colorFromHex(cfg.Style.NodeColor, 1, green),
		line:   colorFromHex(cfg.Style.LineColor, cfg.Style.LineAlpha, rl.ColorAlpha(green, 0.3)),
		seed:   cfg.Seed,
	}
}

// Render implements visualizer.Surface. The scene is drawn by the loop so
// a paused visualizer keeps its last frame on screen.
func (w *Window) Render(net *network.Network, cam *camera.Camera) {
	w.net = net
	w.cam3d = toCamera3D(cam)
}

// Subscribe implements visualizer.EventSource.
func (w *Window) Subscribe(h visualizer.InputHandler) func() {
	w.handler = h
	return func() { w.handler = nil }
}

func (w *Window) build(ctx context.Context) error {
	vcfg := w.cfg.Visualizer()
	vcfg.Seed = w.seed
	vis, err := visualizer.New(w, int(rl.GetScreenWidth()), int(rl.GetScreenHeight()), vcfg,
		visualizer.WithScheduler(w.sched),
		visualizer.WithLogger(w.logger))
	if err != nil {
		return err
	}
	w.vis = vis
	return vis.Start(ctx)
}

func (w *Window) pollInput(ctx context.Context) bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		if w.vis.State() == visualizer.Running {
			w.vis.Stop()
		} else {
			w.vis.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
			if err := w.vis.Start(ctx); err != nil {
				w.logger.Warn("resume failed", zap.Error(err))
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		running := w.vis.State() == visualizer.Running
		w.vis.Stop()
		w.seed++
		if err := w.build(ctx); err != nil {
			w.logger.Warn("reseed failed", zap.Error(err))
			return false
		}
		if !running {
			w.vis.Stop()
		}
	}

	if w.handler == nil {
		return true
	}
	if rl.IsWindowResized() {
		w.handler.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}
	on := rl.IsCursorOnScreen()
	if on {
		pos := rl.GetMousePosition()
		if !w.inside || pos != w.lastMouse {
			w.handler.PointerMove(float64(pos.X), float64(pos.Y))
			w.lastMouse = pos
		}
	} else if w.inside {
		w.handler.PointerLeave()
	}
	w.inside = on
	return true
}

func (w *Window) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(w.bg)
	if w.net != nil {
		rl.BeginMode3D(w.cam3d)
		drawNetwork(w.net, w.node, w.line)
		rl.EndMode3D()
	}
	w.drawHUD()
	rl.EndDrawing()
}

func (w *Window) drawHUD() {
	status := "RUNNING"
	if w.vis.State() != visualizer.Running {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s  frame %d  seed %d", status, w.vis.Frames(), w.seed), 16, 16, 18, colText)
	rl.DrawText("SPACE pause  R reseed  Q quit", 16, int32(rl.GetScreenHeight())-28, 16, colTextDim)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 16)
}

// Run opens a resizable window and animates the network until the window
// closes, Q is pressed or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Render.Width), int32(cfg.Render.Height), "nodemesh")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(0)

	w := newWindow(cfg, logger)
	if err := w.build(ctx); err != nil {
		return err
	}
	defer func() { w.vis.Stop() }()
	logger.Info("window opened",
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if !w.pollInput(ctx) {
			break
		}
		w.sched.Tick()
		w.draw()
	}
	logger.Info("window closed", zap.Uint64("frames", w.vis.Frames()))
	return nil
}
