package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/geometry"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	trailEdges   = 600
	historyCap   = 300
	meshDensity  = 28
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live animation driver: it owns the walker (the mutable
// ODE-state cell), clocks it from real elapsed time, and renders the
// growing trail over the surface wireframe.
type Model struct {
	surf           geometry.Surface
	uRange, vRange [2]float64
	surfaceName    string

	walker    *geodesic.Walker
	initial   geodesic.State
	integName string

	canvas *Canvas
	camera *Camera
	mesh   *Wireframe
	theme  Theme

	running  bool
	showHelp bool
	frameDur time.Duration
	lastTick time.Time
	simTime  float64
	speed    float64

	speedHistory []float64
}

// NewModel builds the driver. subSteps splits each frame's elapsed time
// into several integration steps for stability at high speed.
func NewModel(surf geometry.Surface, uRange, vRange [2]float64, name, integName string, init geodesic.State, subSteps, fps int) Model {
	integ, err := geodesic.NewIntegrator(integName)
	if err != nil {
		integ = geodesic.NewRK4()
		integName = geodesic.DefaultIntegrator
	}
	if fps <= 0 {
		fps = 30
	}

	mesh := SurfaceWireframe(surf, uRange, vRange, meshDensity, meshDensity)
	cam := NewCamera()
	cam.Zoom = FitZoom(mesh)

	return Model{
		surf:         surf,
		uRange:       uRange,
		vRange:       vRange,
		surfaceName:  name,
		walker:       geodesic.NewWalker(surf, integ, init, subSteps),
		initial:      init,
		integName:    integName,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		camera:       cam,
		mesh:         mesh,
		theme:        ThemeRetro,
		running:      true,
		frameDur:     time.Second / time.Duration(fps),
		speed:        1.0,
		speedHistory: make([]float64, 0, historyCap),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.frameDur, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.lastTick = time.Time{}
		case "r":
			m.walker.Reset(m.initial)
			m.simTime = 0
			m.speedHistory = m.speedHistory[:0]
		case "i":
			m.toggleIntegrator()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "[":
			m.speed /= 1.5
		case "]":
			m.speed *= 1.5
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(time.Time(msg))
		}
		return m, tea.Tick(m.frameDur, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance clocks the walker with real elapsed wall time scaled by the
// speed factor. The first tick after a pause only arms the clock.
func (m *Model) advance(now time.Time) {
	if m.lastTick.IsZero() {
		m.lastTick = now
		return
	}
	elapsed := now.Sub(m.lastTick).Seconds()
	m.lastTick = now
	if elapsed > 0.25 {
		elapsed = 0.25 // a stalled terminal must not teleport the particle
	}

	dt := elapsed * m.speed
	m.walker.Advance(dt)
	m.simTime += dt

	st := m.walker.State()
	sp := geometry.MetricAt(m.surf, st.U, st.V).Length(st.DU, st.DV)
	m.speedHistory = append(m.speedHistory, sp)
	if len(m.speedHistory) > historyCap {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) toggleIntegrator() {
	if m.integName == "euler" {
		m.integName = "rk4"
		m.walker.SetIntegrator(geodesic.NewRK4())
	} else {
		m.integName = "euler"
		m.walker.SetIntegrator(geodesic.NewEuler())
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	Render(m.canvas, m.mesh, m.camera)

	path := m.walker.Path
	if len(path) > trailEdges+1 {
		path = path[len(path)-trailEdges-1:]
	}
	Render(m.canvas, PathWireframe(m.surf, path), m.camera)
}

func (m Model) View() string {
	m.draw()

	surfStyle := lipgloss.NewStyle().Foreground(m.theme.Surface)
	canvasView := canvasStyle.Render(surfStyle.Render(m.canvas.String()))

	st := m.walker.State()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.surfaceName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if !st.IsValid() {
		status += "  (degenerate: NaN state)"
	}
	s.WriteString(status + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("metric speed"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.simTime)) + "\n")
	s.WriteString(labelStyle.Render("Integrator") + valueStyle.Render(m.integName) + "\n")
	s.WriteString(labelStyle.Render("Speed x") + valueStyle.Render(fmt.Sprintf("%.2f", m.speed)) + "\n")
	s.WriteString(labelStyle.Render("(u, v)") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f)", st.U, st.V)) + "\n")
	s.WriteString(labelStyle.Render("(du, dv)") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f)", st.DU, st.DV)) + "\n")
	s.WriteString(labelStyle.Render("Points") + valueStyle.Render(fmt.Sprintf("%d", len(m.walker.Path))) + "\n")

	s.WriteString(helpStyle.Render("\n──────────────────────\nSP:Pause R:Reset Q:Quit\nI:Integrator T:Theme\n[ ]:Speed xyz/+-:Camera ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from the start   ║
║  I        - Toggle Euler/RK4         ║
║  [ / ]    - Slow down / speed up     ║
║  X Y Z    - Rotate camera (shift:-)  ║
║  + / -    - Zoom                     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
