package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gasbox/internal/analysis"
	"github.com/san-kum/gasbox/internal/dynamo"
	"github.com/san-kum/gasbox/internal/metrics"
	"github.com/san-kum/gasbox/internal/physics"
	"github.com/san-kum/gasbox/internal/sim"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 120
	tickRate        = time.Second / 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configures a live session.
type Options struct {
	Name         string
	Params       physics.Params
	Seed         int64
	Dt           float64
	StepsPerTick int
	// MaxSteps pauses the session once reached. Zero runs until quit.
	MaxSteps int
	Bins     int
	Theme    string
}

// Model steps the gas on every tick and renders the chamber next to the
// live speed histogram.
type Model struct {
	opts     Options
	sim      *sim.Simulator
	frame    *dynamo.Frame
	canvas   *Canvas
	camera   *Camera
	chamber  *Wireframe
	theme    Theme
	running  bool
	showHelp bool
	err      error

	collisionHistory []float64
	vmax             float64
	mbDensity        []float64
}

func NewModel(opts Options) (Model, error) {
	if opts.StepsPerTick < 1 {
		opts.StepsPerTick = 1
	}
	if opts.Bins < 2 {
		opts.Bins = 30
	}
	if opts.Name == "" {
		opts.Name = "gas"
	}

	m := Model{
		opts:    opts,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		chamber: ChamberWireframe(),
		theme:   GetTheme(opts.Theme),
		running: true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}

	// reference density at bin centres over [0, vmax)
	p := opts.Params
	m.vmax = 4 * analysis.MostProbableSpeed(p.Mass, p.Temperature)
	binWidth := m.vmax / float64(opts.Bins)
	m.mbDensity = make([]float64, opts.Bins)
	for i := range m.mbDensity {
		m.mbDensity[i] = analysis.MaxwellPDF((float64(i)+0.5)*binWidth, p.Mass, p.Temperature)
	}
	return m, nil
}

// reset rebuilds the gas from the configured seed.
func (m *Model) reset() error {
	gas, err := physics.New(m.opts.Params, rand.New(rand.NewSource(m.opts.Seed)))
	if err != nil {
		return err
	}
	m.sim = sim.New(gas)
	for _, metric := range metrics.Defaults(m.opts.Params) {
		m.sim.AddMetric(metric)
	}
	m.frame = nil
	m.err = nil
	m.collisionHistory = m.collisionHistory[:0]
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running && m.err == nil
		case ".":
			if !m.running {
				m.advance(1)
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
			m.running = m.err == nil
		case "x":
			m.camera.RotatePitch(0.1)
		case "X":
			m.camera.RotatePitch(-0.1)
		case "y":
			m.camera.RotateYaw(0.1)
		case "Y":
			m.camera.RotateYaw(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance(m.opts.StepsPerTick)
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	if m.opts.MaxSteps > 0 {
		n = min(n, m.opts.MaxSteps-m.sim.Gas().Steps())
		if n <= 0 {
			m.running = false
			return
		}
	}

	frame, err := m.sim.Advance(n, m.opts.Dt)
	if frame != nil {
		m.frame = frame
	}
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	m.collisionHistory = append(m.collisionHistory, float64(frame.Stats.Collisions))
	if len(m.collisionHistory) > historyCapacity {
		m.collisionHistory = m.collisionHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	gas := m.sim.Gas()
	pos, _ := gas.View()
	m.chamber.ClearPoints()
	for _, p := range pos {
		m.chamber.AddPoint(ToChamber(p, gas.SideLength()))
	}
	Render3D(m.canvas, m.chamber, m.camera)
}

func (m Model) histogram() string {
	speeds := m.sim.Gas().Speeds()
	h := analysis.NewHistogram(speeds, m.opts.Bins, 0, m.vmax)
	return asciigraph.PlotMany(
		[][]float64{h.Density, m.mbDensity},
		asciigraph.Height(8),
		asciigraph.Width(40),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow),
		asciigraph.Caption(fmt.Sprintf("speed density 0..%.3g m/s (MB in yellow)", m.vmax)),
	)
}

func (m Model) status(pal palette) string {
	switch {
	case m.err != nil:
		return pal.failed.Render("FAILED: " + m.err.Error())
	case m.running:
		return pal.running.Render("RUNNING")
	case m.opts.MaxSteps > 0 && m.sim.Gas().Steps() >= m.opts.MaxSteps:
		return pal.paused.Render("DONE")
	default:
		return pal.paused.Render("PAUSED")
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	pal := newPalette(m.theme)
	gas := m.sim.Gas()
	vals := m.sim.Values()

	var s strings.Builder
	s.WriteString(pal.header.Render(strings.ToUpper(m.opts.Name)) + "\n")
	s.WriteString(m.status(pal) + "\n")
	if m.opts.MaxSteps > 0 {
		frac := float64(gas.Steps()) / float64(m.opts.MaxSteps)
		s.WriteString(ProgressBar(frac, 30) + fmt.Sprintf(" %3.0f%%", 100*frac) + "\n")
	}
	s.WriteString(pal.graph.Render(m.histogram()) + "\n")

	s.WriteString(row("Particles", fmt.Sprintf("%d", gas.N())))
	s.WriteString(row("Time", fmt.Sprintf("%.4g s", m.sim.Elapsed())))
	s.WriteString(row("Steps", fmt.Sprintf("%d", gas.Steps())))
	s.WriteString(row("Temperature", fmt.Sprintf("%.1f K", vals["temperature"])))
	s.WriteString(row("Pressure", fmt.Sprintf("%.4g Pa", vals["pressure"])))
	s.WriteString(row("P(V-b)/NkT", fmt.Sprintf("%.3f", vals["gas_law_ratio"])))
	s.WriteString(row("MB distance", fmt.Sprintf("%.3f", vals["maxwell_ks"])))
	if m.frame != nil {
		s.WriteString(row("Collisions", fmt.Sprintf("%d this tick", m.frame.Stats.Collisions)))
	}
	s.WriteString(pal.spark.Render(Sparkline(m.collisionHistory, 40)) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause .:Step R:Reset Q:Quit\nX/Y:Rotate +/-:Zoom T:Theme ?:Help"))

	canvasView := canvasStyle.Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single step (paused)     ║
║  R        - Reset to the seed state  ║
║  x/X y/Y  - Rotate chamber           ║
║  +/-      - Zoom                     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts an interactive session on the alternate screen.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
