package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/viz"
)

type view int

const (
	viewSolutions view = iota
	viewErrors
	viewSweep
	numViews
)

var viewNames = [numViews]string{"solutions", "errors", "total error vs N"}

type solvedMsg struct {
	seq     int
	report  *analysis.Report
	elapsed time.Duration
	err     error
}

type Model struct {
	base     config.Config
	registry *experiment.Registry
	logger   *slog.Logger
	styles   viz.Styles

	inputs  []textinput.Model
	focus   int
	editing bool
	view    view

	seq     int
	solving bool
	cancel  context.CancelFunc
	report  *analysis.Report
	elapsed time.Duration
	err     error

	width  int
	height int
}

func New(cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		base:     *cfg,
		registry: experiment.NewRegistry(),
		logger:   logger,
		styles:   viz.NewStyles(viz.GetTheme(cfg.Theme)),
		inputs:   newInputs(cfg),
		editing:  true,
		width:    80,
		height:   24,
	}
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case solvedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.solving = false
		m.cancel = nil
		m.report, m.err, m.elapsed = msg.report, msg.err, msg.elapsed
		if msg.err != nil {
			m.logger.Debug("solve failed", "err", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stop()
		return m, tea.Quit
	case "tab", "down":
		m.setFocus((m.focus + 1) % int(numFields))
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + int(numFields) - 1) % int(numFields))
		return m, nil
	case "enter":
		return m.solve()
	case "esc":
		m.blur()
		return m, nil
	}

	if m.editing {
		return m.updateInput(msg)
	}

	switch msg.String() {
	case "q":
		m.stop()
		return m, tea.Quit
	case "1", "2", "3":
		m.view = view(msg.String()[0] - '1')
	case "right", "l":
		m.view = (m.view + 1) % numViews
	case "left", "h":
		m.view = (m.view + numViews - 1) % numViews
	case "e", "i":
		m.setFocus(m.focus)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.editing = true
	m.inputs[i].Focus()
}

func (m *Model) blur() {
	m.inputs[m.focus].Blur()
	m.editing = false
}

func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) values() [numFields]string {
	var vs [numFields]string
	for i, in := range m.inputs {
		vs[i] = in.Value()
	}
	return vs
}

// solve validates the form and starts the analysis in the background. A
// running solve is cancelled first.
func (m Model) solve() (tea.Model, tea.Cmd) {
	cfg, err := readForm(m.base, m.values(), m.registry.ListMethods())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.inputs[fieldN].SetValue(strconv.Itoa(cfg.N))
	m.blur()

	m.stop()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	m.solving = true
	m.err = nil

	exp := experiment.New(experiment.Config{
		Equation: cfg.Equation,
		Methods:  cfg.Methods,
		Params:   cfg.Params(),
		Workers:  cfg.Workers,
	})
	registry, logger, seq := m.registry, m.logger, m.seq
	return m, func() tea.Msg {
		start := time.Now()
		if err := exp.Setup(registry, logger); err != nil {
			return solvedMsg{seq: seq, err: err}
		}
		report, err := exp.Run(ctx)
		return solvedMsg{seq: seq, report: report, elapsed: time.Since(start), err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("odelab · " + m.base.Equation))
	b.WriteString("\n\n")

	fields := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		label := m.styles.Muted.Render(fieldLabels[i] + ":")
		if m.editing && i == m.focus {
			label = m.styles.Value.Render(fieldLabels[i] + ":")
		}
		fields[i] = label + " " + in.View()
	}
	b.WriteString(strings.Join(fields, "   "))
	b.WriteString("\n\n")

	tabs := make([]string, numViews)
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if view(i) == m.view {
			tabs[i] = m.styles.Value.Render("[" + label + "]")
		} else {
			tabs[i] = m.styles.Muted.Render(" " + label + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
	case m.solving:
		b.WriteString(m.styles.Muted.Render("solving..."))
	case m.report != nil:
		b.WriteString(m.graph())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("solved in %v", m.elapsed.Round(time.Millisecond))))
	default:
		b.WriteString(m.styles.Muted.Render("press enter to solve"))
	}
	b.WriteString("\n\n")

	hint := "tab next field · enter solve · esc leave field"
	if !m.editing {
		hint = "1/2/3 view · ←/→ cycle · e edit · enter solve · q quit"
	}
	b.WriteString(m.styles.KeyHint.Render(hint))
	return b.String()
}

func (m Model) graph() string {
	w := max(m.width-12, 20)
	h := max(m.height-16, 6)

	r := m.report
	switch m.view {
	case viewErrors:
		return viz.Plot("errors vs x", analysis.ErrorSeries(r.Errors, true), w, h)
	case viewSweep:
		return viz.Plot("max total error vs N", r.Sweep.Series, w, h)
	default:
		series := append([]analysis.Series{r.Solutions.Exact}, r.Solutions.Approx...)
		return viz.Plot("y(x)", series, w, h)
	}
}

// Run starts the form full screen and blocks until the user quits.
func Run(cfg *config.Config, logger *slog.Logger) error {
	_, err := tea.NewProgram(New(cfg, logger), tea.WithAltScreen()).Run()
	return err
}
