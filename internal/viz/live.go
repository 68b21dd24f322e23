// Package viz renders a live, interactive view of a running control loop:
// scrolling asciigraph traces of the measurement against the setpoint,
// the actuator output, and live-tunable controller gains.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pidloop/internal/loop"
	"github.com/san-kum/pidloop/internal/pid"
)

const (
	graphWidth      = 70
	graphHeight     = 8
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

// Model steps the closed loop at a fixed tick and renders its traces.
type Model struct {
	plant     loop.Plant
	stepper   loop.Stepper
	ctrl      *pid.Controller[float64]
	plantName string

	state     loop.State
	initState loop.State
	setpoint  float64
	t         float64
	u         float64

	running  bool
	showHelp bool

	measHist []float64
	setHist  []float64
	outHist  []float64

	paramKeys []string
	selected  int
}

func NewModel(p loop.Plant, stepper loop.Stepper, ctrl *pid.Controller[float64], x0 []float64, setpoint float64, plantName string) Model {
	keys := make([]string, 0)
	for k := range ctrl.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		plant:     p,
		stepper:   stepper,
		ctrl:      ctrl,
		plantName: plantName,
		state:     loop.State(x0).Clone(),
		initState: loop.State(x0).Clone(),
		setpoint:  setpoint,
		running:   true,
		measHist:  make([]float64, 0, historyCapacity),
		setHist:   make([]float64, 0, historyCapacity),
		outHist:   make([]float64, 0, historyCapacity),
		paramKeys: keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
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
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "+", "=":
			m.setpoint += 0.1
		case "-", "_":
			m.setpoint -= 0.1
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the loop by one frame's worth of sample periods.
func (m *Model) step() {
	h := m.ctrl.SampleTime().Seconds()
	perFrame := int(1.0 / frameRate / h)
	if perFrame < 1 {
		perFrame = 1
	}

	for n := 0; n < perFrame; n++ {
		y := m.plant.Output(m.state)
		m.u = m.ctrl.Update(m.setpoint, y)
		m.state = m.stepper.Step(m.plant, m.state, m.u, m.t, h)
		m.t += h
	}

	m.measHist = push(m.measHist, m.plant.Output(m.state))
	m.setHist = push(m.setHist, m.setpoint)
	m.outHist = push(m.outHist, m.u)
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.ctrl.GetParams()[key]
	if val == 0 {
		val = 1e-6
	}
	m.ctrl.SetParam(key, val*factor)
}

// reset restores the initial plant state and clears controller history.
func (m *Model) reset() {
	m.t = 0
	m.u = 0
	m.state = m.initState.Clone()
	m.ctrl.Init()
	m.measHist = m.measHist[:0]
	m.setHist = m.setHist[:0]
	m.outHist = m.outHist[:0]
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(strings.ToUpper(m.plantName)) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n")
	}

	if len(m.measHist) > 1 {
		traces := asciigraph.PlotMany(
			[][]float64{m.setHist, m.measHist},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("setpoint / measurement"),
		)
		s.WriteString(graphStyle.Render(traces) + "\n")

		out := asciigraph.Plot(m.outHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("control output"),
		)
		s.WriteString(graphStyle.Render(out) + "\n")
	}

	s.WriteString(m.statsView())

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space pause · r reset · tab select gain · ↑/↓ nudge · +/- setpoint · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help"))
	}

	return s.String()
}

func (m Model) statsView() string {
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("t", fmt.Sprintf("%.2fs", m.t))
	row("setpoint", fmt.Sprintf("%.3f", m.setpoint))
	row("measurement", fmt.Sprintf("%.3f", m.plant.Output(m.state)))
	row("output", fmt.Sprintf("%.3f", m.u))

	params := m.ctrl.GetParams()
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%s = %.4f", key, params[key])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString(valueStyle.Render("  "+line) + "\n")
		}
	}

	return statsStyle.Render(s.String()) + "\n"
}

// Run starts the interactive loop view and blocks until the user quits.
func Run(p loop.Plant, stepper loop.Stepper, ctrl *pid.Controller[float64], x0 []float64, setpoint float64, plantName string) error {
	program := tea.NewProgram(NewModel(p, stepper, ctrl, x0, setpoint, plantName))
	_, err := program.Run()
	return err
}
