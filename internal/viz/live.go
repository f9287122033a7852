package viz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particles/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Factory builds a fresh simulation; the model calls it on start and reset.
type Factory func() (*sim.Simulation, error)

type Options struct {
	Cols, Rows int
	Dt         float32
	FPS        int
	Theme      string
}

// Model steps a simulation at a fixed dt on every tick and draws it.
type Model struct {
	newSim  Factory
	sim     *sim.Simulation
	canvas  *Canvas
	dt      float32
	tick    time.Duration
	running bool
	attract bool
	pointer *mgl32.Vec2
	theme   int

	energy     []float64
	collisions []float64
	last       sim.FrameStats
	err        error
}

func NewModel(newSim Factory, opts Options) (Model, error) {
	s, err := newSim()
	if err != nil {
		return Model{}, err
	}
	if opts.Cols <= 0 {
		opts.Cols = defaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = defaultRows
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Dt <= 0 {
		opts.Dt = 1 / float32(opts.FPS)
	}
	return Model{
		newSim:     newSim,
		sim:        s,
		canvas:     NewCanvas(opts.Cols, opts.Rows),
		dt:         opts.Dt,
		tick:       time.Second / time.Duration(opts.FPS),
		running:    true,
		attract:    true,
		theme:      ThemeIndex(opts.Theme),
		energy:     make([]float64, 0, historyCapacity),
		collisions: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "a":
			m.attract = !m.attract
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case tea.MouseMsg:
		m.pointer = m.cellToWorld(msg.X, msg.Y)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.nextTick()
	}
	return m, nil
}

func (m *Model) step() {
	var point *mgl32.Vec2
	if m.attract {
		point = m.pointer
	}
	m.last = m.sim.Step(m.dt, point)
	m.energy = appendCapped(m.energy, float64(m.last.KineticEnergy))
	m.collisions = appendCapped(m.collisions, float64(m.last.Collisions))
}

func (m *Model) reset() {
	s, err := m.newSim()
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.err = nil
	m.last = sim.FrameStats{}
	m.energy = m.energy[:0]
	m.collisions = m.collisions[:0]
}

func appendCapped(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

// scale maps world units to canvas dots along each axis.
func (m *Model) scale() (sx, sy float64) {
	w, h := m.sim.Bounds()
	dw, dh := m.canvas.Dots()
	return float64(dw) / float64(w), float64(dh) / float64(h)
}

// cellToWorld converts a terminal cell under the mouse into world
// coordinates, or nil when the cell lies outside the canvas.
func (m *Model) cellToWorld(col, row int) *mgl32.Vec2 {
	col -= canvasStyle.GetPaddingLeft()
	row -= canvasStyle.GetPaddingTop()
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return nil
	}
	sx, sy := m.scale()
	return &mgl32.Vec2{
		float32((float64(col)*2 + 1) / sx),
		float32((float64(row)*4 + 2) / sy),
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	sx, sy := m.scale()
	r := min(sx, sy)
	for _, p := range m.sim.Particles() {
		m.canvas.DrawDisc(float64(p.Position.X())*sx, float64(p.Position.Y())*sy, float64(p.Radius())*r)
	}
	if m.attract && m.pointer != nil {
		m.canvas.DrawCross(int(math.Round(float64(m.pointer.X())*sx)), int(math.Round(float64(m.pointer.Y())*sy)))
	}
}

// View renders the particle field with a stats panel on the right.
func (m Model) View() string {
	theme := Themes[m.theme]
	m.draw()
	field := lipgloss.NewStyle().Foreground(theme.Particles).Render(m.canvas.String())
	canvasView := canvasStyle.Render(field)

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render("PARTICLES") + "\n\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sim.Frame()))
	row("Particles", fmt.Sprintf("%d", len(m.sim.Particles())))
	row("Integrator", m.sim.Integrator())
	row("Energy", fmt.Sprintf("%.2f", m.last.KineticEnergy))
	row("Walls", fmt.Sprintf("%d", m.last.WallHits))
	row("Collisions", Sparkline(m.collisions, 24))
	switch {
	case !m.attract:
		row("Pointer", "off")
	case m.pointer == nil:
		row("Pointer", "outside")
	default:
		row("Pointer", fmt.Sprintf("(%.0f, %.0f)", m.pointer.X(), m.pointer.Y()))
	}
	row("Theme", theme.Name)
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause .:Step A:Attract\nR:Reset T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the terminal program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, newSim Factory, opts Options) error {
	m, err := NewModel(newSim, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viz: %w", err)
	}
	return nil
}
