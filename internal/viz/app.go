package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/metrics"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"go.uber.org/zap"
)

const (
	statsWidth      = 38
	historyCapacity = 600
	gifPath         = "nodemesh.gif"

	minCols = 10
	minRows = 4
)

type frameMsg time.Time

// App is the live terminal view. It is both the visualizer's surface and
// its event source: Bubble Tea messages are translated into pointer and
// resize events while the visualizer is subscribed.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger *zap.Logger

	vis     *visualizer.Visualizer
	sched   *visualizer.StepScheduler
	rec     *metrics.Recorder

	mu      sync.Mutex
	handler visualizer.InputHandler

	canvas     *Canvas
	cols, rows int
	theme      Theme
	seed       int64

	gif      *gifRecorder
	showHelp bool
	status   string
	lastTick time.Time
	fps      float64
}

// NewApp builds and starts a visualizer drawing into the terminal.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := &App{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		sched:  visualizer.NewStepScheduler(),
		rec:    metrics.NewRecorder(historyCapacity, metrics.Standard()...),
		theme:  GetTheme(cfg.Style.Theme).WithColors(cfg.Style.NodeColor, cfg.Style.LineColor),
		seed:   seed,
	}
	a.layout(80, 24)
	if err := a.build(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	vcfg := a.cfg.Visualizer()
	vcfg.Seed = a.seed
	w, h := a.canvas.PixelSize()
	vis, err := visualizer.New(a, w, h, vcfg,
		visualizer.WithScheduler(a.sched),
		visualizer.WithLogger(a.logger),
		visualizer.WithObserver(a.rec))
	if err != nil {
		return err
	}
	a.vis = vis
	a.rec.Reset()
	return a.vis.Start(a.ctx)
}

// Render implements visualizer.Surface.
func (a *App) Render(net *network.Network, cam *camera.Camera) {
	a.canvas.Clear()
	RenderNetwork(a.canvas, net, cam)
	if a.gif != nil {
		a.gif.Capture(a.canvas)
	}
}

// Subscribe implements visualizer.EventSource.
func (a *App) Subscribe(h visualizer.InputHandler) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = h
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.handler = nil
	}
}

// input returns the subscribed handler, or nil while stopped.
func (a *App) input() visualizer.InputHandler {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handler
}

func (a *App) Visualizer() *visualizer.Visualizer { return a.vis }

func (a *App) tick() tea.Cmd {
	fps := a.cfg.Render.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) Init() tea.Cmd { return a.tick() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.layout(msg.Width, msg.Height)
		if h := a.input(); h != nil {
			h.Resize(a.canvas.PixelSize())
		}
	case tea.MouseMsg:
		a.pointer(msg.X, msg.Y)
	case tea.BlurMsg:
		if h := a.input(); h != nil {
			h.PointerLeave()
		}
	case frameMsg:
		now := time.Time(msg)
		if !a.lastTick.IsZero() {
			if dt := now.Sub(a.lastTick).Seconds(); dt > 0 {
				a.fps = 0.9*a.fps + 0.1/dt
			}
		}
		a.lastTick = now
		a.sched.Tick()
		if a.ctx.Err() != nil {
			return a, tea.Quit
		}
		return a, a.tick()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.vis.Stop()
		a.finishRecording()
		return a, tea.Quit
	case " ", "space":
		a.togglePause()
	case "r":
		a.reseed()
	case "t":
		a.theme = NextTheme(a.theme.Name)
	case "g":
		if a.gif != nil {
			a.finishRecording()
		} else {
			a.gif = newGIFRecorder(a.theme, a.cfg.Style.LineAlpha, a.cfg.Render.FPS)
			a.status = "recording"
		}
	case "?":
		a.showHelp = !a.showHelp
	}
	return a, nil
}

func (a *App) togglePause() {
	if a.vis.State() == visualizer.Running {
		a.vis.Stop()
		return
	}
	// resizes seen while stopped never reached the visualizer
	a.vis.Resize(a.canvas.PixelSize())
	if err := a.vis.Start(a.ctx); err != nil {
		a.status = err.Error()
		a.logger.Warn("resume failed", zap.Error(err))
	}
}

func (a *App) reseed() {
	running := a.vis.State() == visualizer.Running
	a.vis.Stop()
	a.seed++
	if err := a.build(); err != nil {
		a.status = err.Error()
		a.logger.Warn("reseed failed", zap.Error(err))
		return
	}
	if !running {
		a.vis.Stop()
	}
	a.logger.Debug("reseeded", zap.Int64("seed", a.seed))
}

func (a *App) finishRecording() {
	if a.gif == nil {
		return
	}
	rec := a.gif
	a.gif = nil
	if err := rec.Save(gifPath); err != nil {
		a.status = "gif: " + err.Error()
		a.logger.Warn("gif not saved", zap.Error(err))
		return
	}
	a.status = fmt.Sprintf("saved %s (%d frames)", gifPath, rec.Len())
	a.logger.Info("gif saved", zap.String("path", gifPath), zap.Int("frames", rec.Len()))
}

// layout sizes the canvas to the terminal, leaving room for the stats panel.
func (a *App) layout(width, height int) {
	a.cols = max(width-statsWidth-canvasStyle.GetHorizontalFrameSize(), minCols)
	a.rows = max(height-canvasStyle.GetVerticalFrameSize(), minRows)
	a.canvas = NewCanvas(a.cols, a.rows)
}

// pointer converts a terminal cell to canvas sub-pixels. Cells outside the
// canvas count as the pointer leaving it.
func (a *App) pointer(x, y int) {
	h := a.input()
	if h == nil {
		return
	}
	col := x - canvasStyle.GetPaddingLeft()
	row := y - canvasStyle.GetPaddingTop()
	if col < 0 || row < 0 || col >= a.cols || row >= a.rows {
		h.PointerLeave()
		return
	}
	h.PointerMove(float64(col*2+1), float64(row*4+2))
}

func (a *App) View() string {
	canvasView := canvasStyle.Render(a.canvas.Render(a.theme))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(a.stats()))
	if a.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (a *App) stats() string {
	var s strings.Builder
	s.WriteString(GradientText("NODEMESH", a.theme.Primary, a.theme.Accent) + "\n")

	switch {
	case a.gif != nil:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", a.gif.Len())))
	case a.vis.State() == visualizer.Running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	nodes, links := a.vis.Size()
	cam := a.vis.Camera()
	ptr := a.vis.Pointer()
	preset := a.cfg.Preset
	if preset == "" {
		preset = "custom"
	}
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Preset", preset)
	row("Seed", fmt.Sprintf("%d", a.seed))
	row("Nodes", fmt.Sprintf("%d", nodes))
	row("Links", fmt.Sprintf("%d", links))
	row("Frame", fmt.Sprintf("%d", a.vis.Frames()))
	row("FPS", fmt.Sprintf("%.0f", a.fps))
	row("Camera", fmt.Sprintf("%+.2f %+.2f", cam.Position.X, cam.Position.Y))
	row("Pointer", fmt.Sprintf("%+.2f %+.2f", ptr.X, ptr.Y))
	row("Theme", a.theme.Name)

	if hist := a.rec.History("connection_stretch"); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(statsWidth-14),
			asciigraph.Precision(3),
			asciigraph.Caption("stretch"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(a.theme.Primary).Render(chart) + "\n")
	}
	s.WriteString("\n" + MetricLabel.Render("Lag") +
		lipgloss.NewStyle().Foreground(a.theme.Secondary).Render(SparklineChart(a.rec.History("camera_lag"), statsWidth-18)) + "\n")

	if a.status != "" {
		s.WriteString("\n" + Subtle.Render(a.status) + "\n")
	}
	s.WriteString(KeyHint.Render("SP:Pause R:Reseed Q:Quit\nT:Theme  G:Record  ?:Help"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reseed the network       ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
║  Mouse    - Pan the camera           ║
╚══════════════════════════════════════╝`

// RunLive runs the live view until the user quits or ctx is cancelled.
func RunLive(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.vis.Stop()
	return runProgram(ctx, app)
}

func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
