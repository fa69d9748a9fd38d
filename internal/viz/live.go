package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fer14/gravitybox/internal/config"
	"github.com/Fer14/gravitybox/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	trailCapacity   = 100
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the engine at the configured frame rate and renders the
// viewport on a braille canvas. Clicks inside the canvas insert bodies.
type Model struct {
	eng           *engine.Engine
	cfg           *config.Config
	canvas        *Canvas
	trails        [][]engine.Vec2
	energyHistory []float64
	t             float64
	running       bool
	warning       string
}

func NewModel(cfg *config.Config, eng *engine.Engine) Model {
	m := Model{
		eng:     eng,
		cfg:     cfg,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
	}
	m.syncTrails()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
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
			m.eng.Reset()
			m.trails = nil
			m.energyHistory = nil
			m.t = 0
			m.warning = ""
			m.syncTrails()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.insertAt(msg.X, msg.Y)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// insertAt maps a terminal cell to viewport coordinates and adds a body
// there. The canvas is rendered with padding (1,2), so the origin cell of
// the drawable area is offset.
func (m *Model) insertAt(cellX, cellY int) {
	subX := (cellX - 2) * 2
	subY := (cellY - 1) * 4
	if subX < 0 || subY < 0 || subX >= canvasWidth*2 || subY >= canvasHeight*4 {
		return
	}

	worldX := float64(subX) / float64(canvasWidth*2) * m.cfg.Width
	worldY := float64(subY) / float64(canvasHeight*4) * m.cfg.Height

	if m.eng.AddAt(worldX, worldY) {
		m.warning = ""
		m.syncTrails()
	} else {
		m.warning = "body limit reached"
	}
}

func (m *Model) syncTrails() {
	for len(m.trails) < m.eng.Len() {
		m.trails = append(m.trails, make([]engine.Vec2, 0, trailCapacity))
	}
}

func (m *Model) step() {
	if err := m.eng.Step(m.cfg.Dt()); err != nil {
		return
	}
	m.t += m.cfg.Dt()

	for i, b := range m.eng.Bodies() {
		m.trails[i] = append(m.trails[i], b.Pos)
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}

	m.energyHistory = append(m.energyHistory, m.eng.TotalEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) project(p engine.Vec2) (int, int) {
	x := int(p.X / m.cfg.Width * float64(canvasWidth*2))
	y := int(p.Y / m.cfg.Height * float64(canvasHeight*4))
	return x, y
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, trail := range m.trails {
		for _, p := range trail {
			x, y := m.project(p)
			m.canvas.Set(x, y)
		}
	}

	for _, b := range m.eng.Bodies() {
		x, y := m.project(b.Pos)
		r := int(b.Radius / m.cfg.Width * float64(canvasWidth*2))
		if r < 1 {
			r = 1
		}
		m.canvas.FillCircle(x, y, r)
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("GRAVITYBOX") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d / %d", m.eng.Len(), m.cfg.MaxBodies)) + "\n")
	p := m.eng.Momentum()
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)) + "\n")

	if m.warning != "" {
		s.WriteString("\n" + warnStyle.Render(m.warning) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nClick: Add body\nSP:Pause R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live terminal view with mouse support enabled.
func Run(cfg *config.Config, eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(cfg, eng), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
