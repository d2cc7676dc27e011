package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gamesim/internal/config"
	"github.com/san-kum/gamesim/internal/experiment"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/sim"
)

const (
	width           = 72
	height          = 22
	historyCapacity = 300
	frameInterval   = time.Second / 60

	// canvas padding from canvasStyle, used to map mouse cells
	padTop  = 1
	padLeft = 2
)

type TickMsg time.Time

// Model is the live arena: it ticks a session's scheduler on a timer and
// draws colliders and render handles.
type Model struct {
	session *experiment.Session
	keys    *input.Keys
	name    string
	arenaW  float64
	arenaH  float64

	width, height int
	canvas        *Canvas
	running       bool
	showHelp      bool
	theme         Theme
	styles        styles

	last         sim.FrameStats
	speedHistory []float64
}

func NewModel(session *experiment.Session, keys *input.Keys, cfg *config.Config) Model {
	arenaW, arenaH := cfg.Arena.Width, cfg.Arena.Height
	if arenaW <= 0 {
		arenaW = config.DefaultWidth
	}
	if arenaH <= 0 {
		arenaH = config.DefaultHeight
	}
	return Model{
		session:      session,
		keys:         keys,
		name:         cfg.Name,
		arenaW:       arenaW,
		arenaH:       arenaH,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		running:      true,
		theme:        Themes[0],
		styles:       newStyles(Themes[0]),
		speedHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Running() bool           { return m.running }
func (m Model) Stats() sim.FrameStats   { return m.last }
func (m Model) Theme() Theme            { return m.theme }
func (m Model) SpeedHistory() []float64 { return m.speedHistory }

// Update handles input events and runs one scheduler frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "left":
			m.keys.Press(input.KeyLeft)
		case "up":
			m.keys.Press(input.KeyUp)
		case "right":
			m.keys.Press(input.KeyRight)
		case "down":
			m.keys.Press(input.KeyDown)
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress, tea.MouseActionMotion:
			if msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone {
				break
			}
			x, y := m.unproject((msg.X-padLeft)*2+1, (msg.Y-padTop)*4+2)
			m.keys.SetTouch(input.Point{X: x, Y: y})
		case tea.MouseActionRelease:
			m.keys.ClearTouch()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.last = m.session.Scheduler.Tick()
	speed := m.session.Scheduler.Metrics()["mean_speed"]
	m.speedHistory = append(m.speedHistory, speed)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

// reset respawns the scenario and forgets held keys and history.
func (m *Model) reset() {
	m.session.Reset()
	m.keys.Reset()
	m.speedHistory = m.speedHistory[:0]
}

// project maps world coordinates to canvas sub-pixels. The arena is centered
// on the origin with y pointing up.
func (m *Model) project(x, y float64) (int, int) {
	cw, ch := float64(m.width*2-1), float64(m.height*4-1)
	sx := (x/m.arenaW + 0.5) * cw
	sy := (0.5 - y/m.arenaH) * ch
	return int(math.Round(sx)), int(math.Round(sy))
}

func (m *Model) unproject(sx, sy int) (float64, float64) {
	cw, ch := float64(m.width*2-1), float64(m.height*4-1)
	x := (float64(sx)/cw - 0.5) * m.arenaW
	y := (0.5 - float64(sy)/ch) * m.arenaH
	return x, y
}

// draw outlines every registered collider and puts each live render handle's
// glyph at its interpolated position.
func (m *Model) draw() {
	m.canvas.Clear()
	for _, e := range m.session.World.Entities() {
		for i := 0; i < e.ShapeCount(); i++ {
			c, ok := e.Collider(i)
			if !ok {
				continue
			}
			x0, y0 := m.project(c.Bounds.Min.X(), c.Bounds.Max.Y())
			x1, y1 := m.project(c.Bounds.Max.X(), c.Bounds.Min.Y())
			m.canvas.DrawRect(x0, y0, x1, y1)
		}
	}
	for _, h := range m.session.Recorder.Snapshot() {
		x, y := h.Position()
		sx, sy := m.project(x, y)
		m.canvas.Put(sx, sy, []rune(h.Glyph())[0])
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	glyph := lipgloss.NewStyle().Foreground(m.theme.Glyph).Bold(true)
	dots := lipgloss.NewStyle().Foreground(m.theme.Arena)
	canvasView := m.styles.canvas.Render(m.canvas.Render(dots.Render, glyph.Render))

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString(m.styles.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mean speed"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	sched := m.session.Scheduler
	metrics := sched.Metrics()
	score := m.session.Env.Score
	rows := []struct{ label, value string }{
		{"Frame", fmt.Sprintf("%d", sched.Frames())},
		{"Ticks", fmt.Sprintf("%d", sched.Steps())},
		{"Delta", fmt.Sprintf("%.1fms", m.last.Dt*1000)},
		{"Alpha", ProgressBar(m.last.Alpha, 10)},
		{"Entities", fmt.Sprintf("%d", m.session.World.Len())},
		{"Handles", fmt.Sprintf("%d", m.session.Recorder.Live())},
		{"Collisions", fmt.Sprintf("%.0f", metrics["collisions"])},
		{"Collected", fmt.Sprintf("%d", score.Collected)},
		{"Hits", fmt.Sprintf("%d", score.Hits)},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(m.styles.label.Render(r.label) + m.styles.value.Render(r.value) + "\n")
	}

	s.WriteString(m.styles.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n←↑→↓:Move T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows   - Steer the player         ║
║  Mouse    - Drag the player          ║
║  Space    - Pause/Resume             ║
║  R        - Respawn the scenario     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
