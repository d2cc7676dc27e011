package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/san-kum/gamesim/internal/config"
	"github.com/san-kum/gamesim/internal/experiment"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/sim"
)

var presetInfo = map[string]string{
	"arena":  "steer, collect, avoid",
	"convoy": "parent with children",
	"pileup": "physics shapes push apart",
}

const (
	stateMenu = iota
	stateSim
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// picker lists the built-in scenarios and launches the live arena for the
// chosen one.
type picker struct {
	state   int
	cursor  int
	presets []string
	log     zerolog.Logger
	err     error
	live    Model
}

func newPicker(log zerolog.Logger) picker {
	return picker{state: stateMenu, presets: config.ListPresets(), log: log}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		live, err := Build(config.GetPreset(m.presets[m.cursor]), m.log)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.state = live, stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m picker) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("GAMESIM") + "\n    " + menuSub.Render("fixed-step arena") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuDesc.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuSub.Render(" navigate  ") + menuKey.Render("enter") + menuSub.Render(" select  ") + menuKey.Render("q") + menuSub.Render(" quit") + "\n")
	return b.String()
}

// Build prepares a live arena for cfg on the wall clock.
func Build(cfg *config.Config, log zerolog.Logger) (Model, error) {
	keys := input.NewKeys(nil, input.DefaultHold)
	exp, err := experiment.New(cfg, experiment.WithInput(keys), experiment.WithLogger(log))
	if err != nil {
		return Model{}, err
	}
	session, err := exp.Setup(sim.SystemClock{})
	if err != nil {
		return Model{}, err
	}
	return NewModel(session, keys, cfg), nil
}

// RunLive opens the live arena for cfg.
func RunLive(cfg *config.Config, log zerolog.Logger) error {
	m, err := Build(cfg, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// RunInteractive opens the scenario picker.
func RunInteractive(log zerolog.Logger) error {
	_, err := tea.NewProgram(newPicker(log), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
