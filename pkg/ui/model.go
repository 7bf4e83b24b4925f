// Package ui implements the interactive terminal viewer: a bubbletea
// program hosting the visualizer, rasterizing the graph onto a cell
// canvas, and surfacing node descriptions in a glamour-rendered panel.
package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/vitae/pkg/config"
	"github.com/vanderheijden86/vitae/pkg/model"
	"github.com/vanderheijden86/vitae/pkg/viz"
)

const (
	defaultTickRate = 33 * time.Millisecond
	panelHeight     = 12
	zoomStep        = 1.15
	panStep         = 4.0
)

type tickMsg time.Time

// Model is the bubbletea model for the viewer.
type Model struct {
	v         *viz.Visualizer
	canvas    *Canvas
	panel     *descriptionPanel
	scheduler *frameScheduler

	width, height int
	tickRate      time.Duration
	showLabels    bool
	initialScale  float64

	hovered   string
	panning   bool
	inTooltip bool
	lastX     int
	lastY     int
	status    string
	ready     bool
}

// NewModel builds the viewer around the given graph. The visualizer
// starts with a zero viewport and picks up its real size from the first
// window size message.
func NewModel(nodes []*model.Node, links []*model.Link, cfg config.ViewerConfig) (Model, error) {
	m := Model{
		canvas:     NewCanvas(0, 0),
		panel:      newDescriptionPanel(40, panelHeight),
		scheduler:  newFrameScheduler(),
		tickRate:   defaultTickRate,
		showLabels: cfg.ShowLabels,
	}
	if cfg.TickRateMs > 0 {
		m.tickRate = time.Duration(cfg.TickRateMs) * time.Millisecond
	}
	if cfg.InitialScale > 0 {
		m.initialScale = cfg.InitialScale
	}

	m.v = viz.New(0, 0,
		viz.WithScheduler(m.scheduler),
		viz.WithTooltip(m.panel),
	)
	for _, n := range nodes {
		if err := m.v.AddNode(n); err != nil {
			return m, fmt.Errorf("adding node: %w", err)
		}
	}
	for _, l := range links {
		if err := m.v.AddLink(l); err != nil {
			return m, fmt.Errorf("adding link: %w", err)
		}
	}
	return m, nil
}

// Visualizer exposes the hosted visualizer, mainly for tests.
func (m Model) Visualizer() *viz.Visualizer { return m.v }

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.scheduler.advance(m.tickRate)
		m.v.Tick()
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height

	rows := msg.Height - 2 // header and status bar
	if rows < 0 {
		rows = 0
	}
	m.canvas.Resize(msg.Width, rows)

	panelW := msg.Width / 3
	if panelW > 60 {
		panelW = 60
	}
	m.panel.resize(panelW, panelHeight)

	w, h := m.canvas.PixelSize()
	m.v.ObserveResize(w, h)

	if !m.ready {
		m.ready = true
		if m.initialScale > 0 && m.initialScale != 1 {
			m.v.Zoom(m.initialScale, w/2, h/2)
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "+", "=":
		cx, cy := m.viewCenter()
		m.v.Zoom(zoomStep, cx, cy)
	case "-", "_":
		cx, cy := m.viewCenter()
		m.v.Zoom(1/zoomStep, cx, cy)
	case "left":
		m.v.Pan(panStep, 0)
	case "right":
		m.v.Pan(-panStep, 0)
	case "up":
		m.v.Pan(0, panStep)
	case "down":
		m.v.Pan(0, -panStep)
	case "r":
		m.v.ResetView()
		m.status = "view reset"
	case "l":
		m.showLabels = !m.showLabels
	case "c":
		if m.hovered != "" {
			if err := clipboard.WriteAll(m.hovered); err != nil {
				m.status = "clipboard unavailable"
			} else {
				m.status = fmt.Sprintf("copied %s", m.hovered)
			}
		}
	case "esc":
		m.v.BackgroundClick()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	col := msg.X
	row := msg.Y - 1 // header row

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.v.Zoom(zoomStep, float64(col), float64(row)*cellAspect)
		return m
	case tea.MouseButtonWheelDown:
		m.v.Zoom(1/zoomStep, float64(col), float64(row)*cellAspect)
		return m
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return m.handleMotion(col, row)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if n := m.nodeAt(col, row); n != nil {
			m.hovered = n.ID
			m.v.DragStart(n.ID, float64(col), float64(row)*cellAspect)
		} else {
			m.v.BackgroundClick()
			m.panning = true
			m.lastX, m.lastY = col, row
		}

	case tea.MouseActionRelease:
		if m.v.Dragging() != nil {
			m.v.DragEnd()
		}
		m.panning = false
	}
	return m
}

func (m Model) handleMotion(col, row int) Model {
	if m.v.Dragging() != nil {
		m.v.DragMove(float64(col), float64(row)*cellAspect)
		return m
	}
	if m.panning {
		dx := float64(col - m.lastX)
		dy := float64(row-m.lastY) * cellAspect
		m.v.Pan(dx, dy)
		m.lastX, m.lastY = col, row
		return m
	}

	if m.panel.Visible() && row >= m.canvasShownRows() {
		if !m.inTooltip {
			m.inTooltip = true
			m.v.PointerEnterTooltip()
		}
		return m
	}
	if m.inTooltip {
		m.inTooltip = false
		m.v.PointerLeaveTooltip()
	}

	n := m.nodeAt(col, row)
	switch {
	case n == nil && m.hovered != "":
		m.hovered = ""
		m.v.PointerLeaveNode()
	case n != nil && n.ID != m.hovered:
		m.hovered = n.ID
		m.v.PointerEnterNode(n.ID)
	}
	return m
}

func (m Model) nodeAt(col, row int) *model.Node {
	return NodeAt(m.v.Nodes(), m.v.Transform(), col, row, m.v.Config().CircleRadiusUnit)
}

func (m Model) viewCenter() (cx, cy float64) {
	w, h := m.canvas.PixelSize()
	return w / 2, h / 2
}

// canvasShownRows is how many canvas rows are visible once the
// description panel takes its share of the bottom.
func (m Model) canvasShownRows() int {
	_, rows := m.canvas.Size()
	if !m.panel.Visible() {
		return rows
	}
	shown := rows - panelHeight
	if shown < 0 {
		shown = 0
	}
	return shown
}

func (m Model) View() string {
	if !m.ready {
		return "loading graph..."
	}

	frame := m.canvas.Render(m.v.Nodes(), m.v.Links(), m.v.Transform(), RenderOptions{
		ShowLabels: m.showLabels,
		HoveredID:  m.hovered,
	})

	body := frame
	if m.panel.Visible() {
		lines := splitLines(frame, m.canvasShownRows())
		body = lipgloss.JoinVertical(lipgloss.Left, lines, m.panel.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
	)
}

func (m Model) headerView() string {
	title := fmt.Sprintf("vitae · %d entries · %d links", len(m.v.Nodes()), len(m.v.Links()))
	return HeaderStyle.Render(title)
}

func (m Model) statusView() string {
	scale := m.v.Transform().Scale
	state := "settling"
	if m.v.Settled() {
		state = "settled"
	}
	s := fmt.Sprintf("%s · zoom %.2f · q quit · +/- zoom · arrows pan · r reset · l labels · c copy", state, scale)
	if m.status != "" {
		s = m.status + " · " + s
	}
	return StatusBarStyle.Render(truncate(s, m.width))
}

// splitLines keeps the first n lines of s.
func splitLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
			if count == n {
				return s[:i]
			}
		}
	}
	return s
}
