package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"grasplab/internal/engine"
	"grasplab/internal/experiment"
	"grasplab/internal/scene"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600

	// Side view window in world coordinates (x right, z up).
	viewXMin = -0.25
	viewXMax = 0.25
	viewZMin = 0.0
	viewZMax = 0.45
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

var phaseNames = []string{"retract open", "descend open", "close jaw", "lift closed"}

type TickMsg time.Time

// Model steps the grasp simulation and renders it as a braille side view
// with a status pane.
type Model struct {
	setup  *experiment.Setup
	state  engine.State
	u      engine.Control
	t      float64
	step   int
	dt     float64
	canvas *Canvas

	heightHistory []float64
	running       bool
	stepsPerTick  int
	showHelp      bool
	showContacts  bool
}

func NewModel(setup *experiment.Setup) Model {
	return Model{
		setup:         setup,
		state:         setup.Model.InitialState(),
		u:             make(engine.Control, setup.Model.ControlDim()),
		dt:            setup.Config.Sim.Dt,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		heightHistory: make([]float64, 0, historyCapacity),
		running:       true,
		stepsPerTick:  8,
		showContacts:  true,
	}
}

// Run drives the live view until the user quits.
func Run(setup *experiment.Setup) error {
	p := tea.NewProgram(NewModel(setup))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

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
		case "c":
			m.showContacts = !m.showContacts
		case "+", "=":
			if m.stepsPerTick < 64 {
				m.stepsPerTick *= 2
			}
		case "-", "_":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick; i++ {
				m.advance()
			}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	m.u = m.setup.Controller.Compute(m.state, m.t)
	m.state = m.setup.Integrator.Step(m.setup.Model, m.state, m.u, m.t, m.dt)
	m.t += m.dt
	m.step++

	m.heightHistory = append(m.heightHistory, m.setup.Model.BoxHeight(m.state))
	if len(m.heightHistory) > historyCapacity {
		m.heightHistory = m.heightHistory[1:]
	}
}

func (m *Model) reset() {
	m.state = m.setup.Model.InitialState()
	m.u = make(engine.Control, m.setup.Model.ControlDim())
	m.t = 0
	m.step = 0
	m.heightHistory = m.heightHistory[:0]
	if m.setup.Cycle != nil {
		m.setup.Cycle.Reset()
	}
}

// toScreen maps world (x, z) to sub-pixel canvas coordinates.
func toScreen(x, z float64) (int, int) {
	cw, ch := canvasWidth*2, canvasHeight*4
	sx := int((x - viewXMin) / (viewXMax - viewXMin) * float64(cw))
	sy := int((viewZMax - z) / (viewZMax - viewZMin) * float64(ch))
	return sx, sy
}

func (m *Model) fillWorldRect(x0, z0, x1, z1 float64) {
	sx0, sy0 := toScreen(x0, z0)
	sx1, sy1 := toScreen(x1, z1)
	m.canvas.FillRect(sx0, sy0, sx1, sy1)
}

func (m *Model) draw() {
	m.canvas.Clear()
	mdl := m.setup.Model

	// Table slab.
	table := m.setup.Config.Scene.TableSize
	top := mdl.TableTop()
	m.drawWorldRect(-table[0]/2, top-table[2], table[0]/2, top)

	// Box.
	boxHalf := mdl.BoxHalf()
	h := mdl.BoxHeight(m.state)
	m.fillWorldRect(-boxHalf[0], h-boxHalf[2], boxHalf[0], h+boxHalf[2])

	// Gripper: palm bar with a finger hanging from each end.
	padL, padR := mdl.PadPositions(m.state)
	palm := mdl.PalmHeight(m.state)
	pad := mdl.GripperHeight(m.state)
	m.fillWorldRect(padL-0.01, palm-0.005, padR+0.01, palm+0.005)
	m.fillWorldRect(padL-scene.GripperPadHalfWidth, pad-0.02, padL+scene.GripperPadHalfWidth, palm)
	m.fillWorldRect(padR-scene.GripperPadHalfWidth, pad-0.02, padR+scene.GripperPadHalfWidth, palm)

	// Reference markers sit on the table edge; only x_ref is in this plane.
	if m.setup.Config.Scene.Markers {
		m.fillWorldRect(0.19, top, 0.21, top+0.01)
	}
}

func (m *Model) drawWorldRect(x0, z0, x1, z1 float64) {
	sx0, sy0 := toScreen(x0, z0)
	sx1, sy1 := toScreen(x1, z1)
	m.canvas.DrawRect(sx0, sy0, sx1, sy1)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	mdl := m.setup.Model
	var s strings.Builder
	s.WriteString(headerStyle.Render("GRASP CYCLE") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.heightHistory) > 1 {
		chart := asciigraph.Plot(m.heightHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("box height"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	if m.setup.Cycle != nil {
		_, idx := m.setup.Cycle.Current()
		name := "?"
		if idx >= 0 && idx < len(phaseNames) {
			name = phaseNames[idx]
		}
		s.WriteString(labelStyle.Render("Phase") + phaseStyle.Render(fmt.Sprintf("%d %s", idx, name)) + "\n")
	}
	s.WriteString(labelStyle.Render("Box z") + valueStyle.Render(fmt.Sprintf("%.4f", mdl.BoxHeight(m.state))) + "\n")
	s.WriteString(labelStyle.Render("Pads z") + valueStyle.Render(fmt.Sprintf("%.4f", mdl.GripperHeight(m.state))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", mdl.Energy(m.state))) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.stepsPerTick)) + "\n")

	if m.showContacts {
		s.WriteString("\nCONTACTS\n")
		contacts := mdl.Contacts(m.state)
		if len(contacts) == 0 {
			s.WriteString(labelStyle.Render("  (none)") + "\n")
		}
		for _, c := range contacts {
			line := fmt.Sprintf("%s/%s f=%.2f", c.Geom1, c.Geom2, c.Force)
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nC:Contacts +/-:Speed ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  C        - Toggle contact list      ║
║  +/-      - Faster/slower playback   ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
