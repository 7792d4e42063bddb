package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/visualizer"
	"go.uber.org/zap"
)

var presetInfo = map[string]string{
	"default": "50 nodes, the classic backdrop",
	"dense":   "crowded mesh, short links",
	"sparse":  "a few lonely nodes",
	"calm":    "slow drift, lazy camera",
	"storm":   "fast nodes, wide parallax",
}

var (
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00df81")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00a862"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleD  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// menu picks a preset and then hands over to the live App.
type menu struct {
	ctx    context.Context
	base   *config.Config
	logger *zap.Logger

	presets       []string
	cursor        int
	width, height int
	live          *App
	err           error
}

func newMenu(ctx context.Context, base *config.Config, logger *zap.Logger) *menu {
	m := &menu{
		ctx:     ctx,
		base:    base,
		logger:  logger,
		presets: config.ListPresets(),
		width:   80,
		height:  24,
	}
	for i, name := range m.presets {
		if name == base.Preset {
			m.cursor = i
		}
	}
	return m
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		return m.live.Update(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case "enter", " ", "space":
			return m, m.launch()
		}
	}
	return m, nil
}

// launch starts the live view with the chosen preset. Seed and style from
// the base config carry over.
func (m *menu) launch() tea.Cmd {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	cfg.Seed = m.base.Seed
	cfg.Style = m.base.Style
	cfg.Render = m.base.Render

	app, err := NewApp(m.ctx, cfg, m.logger)
	if err != nil {
		m.err = err
		m.logger.Warn("preset failed to start", zap.String("preset", name), zap.Error(err))
		return nil
	}
	m.logger.Debug("launching preset", zap.String("preset", name))
	m.live = app
	m.live.layout(m.width, m.height)
	m.live.vis.Resize(m.live.canvas.PixelSize())
	return m.live.Init()
}

func (m *menu) View() string {
	if m.live != nil {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("NODEMESH", "#00df81", "#00ff81") +
		"\n    " + Subtle.Render("ambient network visualizer") +
		"\n    " + Separator(26) + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuIdleD.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") +
		menuKey.Render("enter") + menuIdle.Render(" start  ") +
		menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

// RunMenu shows the preset picker, then the live view.
func RunMenu(ctx context.Context, base *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := newMenu(ctx, base, logger)
	defer func() {
		if m.live != nil && m.live.vis.State() == visualizer.Running {
			m.live.vis.Stop()
		}
	}()
	return runProgram(ctx, m)
}
