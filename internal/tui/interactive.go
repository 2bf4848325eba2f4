package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/physics"
	"github.com/san-kum/inspector/internal/plot"
	"github.com/san-kum/inspector/internal/watch"
	"go.uber.org/zap"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type reloadMsg watch.Event

// Model is the bubbletea model for one inspector window.
type Model struct {
	in      *driver.Inspector
	target  physics.Target
	watcher *watch.Watcher
	logger  *zap.Logger

	out    driver.Outcome
	hasOut bool
	status string

	width  int
	height int
}

func NewModel(in *driver.Inspector, target physics.Target, w *watch.Watcher, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		in:      in,
		target:  target,
		watcher: w,
		logger:  logger,
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForReload(m.watcher)
}

func waitForReload(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return reloadMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case reloadMsg:
		m.reload(watch.Event(msg))
		return m, waitForReload(m.watcher)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	form := m.in.Form()
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		return m, form.Next()
	case "shift+tab", "up":
		return m, form.Prev()
	case "enter":
		m.out = m.in.Calculate()
		m.hasOut = true
		m.status = ""
		return m, nil
	case "ctrl+s":
		if m.in.Apply() {
			m.status = "applied"
		} else {
			m.status = "invalid inputs"
		}
		return m, nil
	}

	changed, cmd := form.Update(msg)
	if changed && m.in.Edited() && !m.in.Valid() {
		m.status = "invalid inputs"
	} else if changed {
		m.status = ""
	}
	return m, cmd
}

func (m *Model) reload(ev watch.Event) {
	if ev.Err != nil {
		m.status = "reload failed: " + ev.Err.Error()
		return
	}
	if ev.Config.Function != "" && ev.Config.Function != m.target.Name {
		m.logger.Warn("function change ignored on reload",
			zap.String("running", m.target.Name),
			zap.String("config", ev.Config.Function))
	}
	params, _, err := ev.Config.Resolve(m.target)
	if err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	m.in.LoadParams(params)
	m.hasOut = false
	m.status = "parameters reloaded"
}

func (m Model) View() string {
	var b strings.Builder
	opts := m.in.Options()

	b.WriteString("\n")
	b.WriteString("   " + cyan.Render(m.target.Name) + "  " + dim.Render(m.target.Description) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 36)) + "\n\n")

	for _, line := range strings.Split(strings.TrimRight(m.in.Form().View(), "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}

	if opts.Plot.Enabled {
		b.WriteString("\n   " + dim.Render(fmt.Sprintf("sweep %s over [%s, %s]  samples %d  resolution %d",
			opts.Plot.Variable, opts.Plot.Min, opts.Plot.Max, opts.Plot.Samples, opts.Plot.Resolution)) + "\n")
	}

	b.WriteString("\n")
	if m.hasOut {
		style := green
		if m.out.Err != nil {
			style = red
		}
		b.WriteString("   " + style.Render(m.out.Message) + "\n")

		if len(m.out.Points) > 0 {
			w := m.width - 16
			if w < 30 {
				w = 30
			}
			h := m.height - len(m.in.Form().Rows()) - 16
			if h < 5 {
				h = 5
			}
			graph := plot.Terminal(m.out.Points, w, h, opts.Plot.Variable)
			b.WriteString("\n")
			for _, line := range strings.Split(graph, "\n") {
				b.WriteString("   " + white.Render(line) + "\n")
			}
		}
		if m.out.PlotPath != "" {
			b.WriteString("   " + dimmer.Render(m.out.PlotPath) + "\n")
		}
	} else {
		b.WriteString("   " + dimmer.Render("press enter to calculate") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n   " + yellow.Render(m.status) + "\n")
	}

	hint := "   tab/↑↓ field  space toggle  enter calculate  ctrl+s apply  esc quit"
	if opts.Autosave {
		hint += "  " + "(autosave)"
	}
	b.WriteString("\n" + dim.Render(hint) + "\n")

	return b.String()
}

// Run shows the inspector until the user quits, then tears it down.
func Run(in *driver.Inspector, target physics.Target, w *watch.Watcher, logger *zap.Logger) error {
	defer in.Close()
	p := tea.NewProgram(NewModel(in, target, w, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
