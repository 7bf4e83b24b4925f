package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/vitae/pkg/config"
	"github.com/vanderheijden86/vitae/pkg/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	root := model.NewNode("jane")
	root.Description = "# Jane Doe\n\nSoftware engineer."
	work := model.NewNode("work")
	work.Depth = 1
	work.RelSize = 0.65
	work.RelDistance = 0.6

	m, err := NewModel(
		[]*model.Node{root, work},
		[]*model.Link{{Source: root, Target: work}},
		config.DefaultConfig().Viewer,
	)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

// tick advances the frame loop n times, firing due scheduler callbacks.
func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(Model)
	}
	return m
}

// sized returns a model that has received its terminal dimensions and
// waited out the resize debounce.
func sized(t *testing.T, cols, rows int) Model {
	t.Helper()
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: cols, Height: rows})
	return tick(m, 20)
}

// moveTo pins a node at a sim position and returns its cell coordinates
// in mouse space (header row included).
func moveTo(m Model, id string, x, y float64) (col, row int) {
	n := m.v.Node(id)
	n.Pos = r2.Vec{X: x, Y: y}
	sx, sy := m.v.Transform().Apply(x, y)
	return int(math.Round(sx)), int(math.Round(sy/cellAspect)) + 1
}

func TestWindowSize_ReconfiguresAfterDebounce(t *testing.T) {
	m := newTestModel(t)
	if got := m.v.Config().CircleRadiusUnit; got != 0 {
		t.Fatalf("pre-size radius unit = %v, want 0", got)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	// The relayout is debounced; a couple of frames is not enough.
	m = tick(m, 2)
	if got := m.v.Config().CircleRadiusUnit; got != 0 {
		t.Fatalf("resize applied before debounce elapsed, unit = %v", got)
	}

	m = tick(m, 20)
	if got := m.v.Config().CircleRadiusUnit; got <= 0 {
		t.Fatalf("post-debounce radius unit = %v, want > 0", got)
	}
	w, h := m.v.Viewport()
	if w != 80 || h != 44 {
		t.Errorf("viewport = %gx%g, want 80x44", w, h)
	}
}

func TestTick_AdvancesSimulation(t *testing.T) {
	m := sized(t, 80, 24)

	before := m.v.Simulation().Alpha()
	m = tick(m, 10)
	after := m.v.Simulation().Alpha()
	if after >= before {
		t.Errorf("alpha did not decay: %v -> %v", before, after)
	}
}

func TestKey_Quit(t *testing.T) {
	m := sized(t, 80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q produced %T, want tea.QuitMsg", cmd())
	}
}

func TestKey_Zoom(t *testing.T) {
	m := sized(t, 80, 24)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if got := m.v.Transform().Scale; got <= 1 {
		t.Errorf("scale after zoom in = %v, want > 1", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if got := m.v.Transform().Scale; math.Abs(got-1) > 1e-9 {
		t.Errorf("scale after zoom out = %v, want 1", got)
	}
}

func TestKey_ResetView(t *testing.T) {
	m := sized(t, 80, 24)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	tr := m.v.Transform()
	if tr.X != 0 || tr.Y != 0 || tr.Scale != 1 {
		t.Errorf("transform after reset = %+v", tr)
	}
}

func TestKey_ToggleLabels(t *testing.T) {
	m := sized(t, 80, 24)
	was := m.showLabels
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.showLabels == was {
		t.Error("l did not toggle labels")
	}
}

func TestWheel_Zooms(t *testing.T) {
	m := sized(t, 80, 24)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := m.v.Transform().Scale; got <= 1 {
		t.Errorf("scale after wheel up = %v, want > 1", got)
	}

	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.v.Transform().Scale; math.Abs(got-1) > 1e-9 {
		t.Errorf("scale after wheel down = %v, want 1", got)
	}
}

func TestHover_ShowsAndHidesPanel(t *testing.T) {
	m := sized(t, 80, 24)
	col, row := moveTo(m, "jane", 40, 22)

	m = update(t, m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	if !m.panel.Visible() {
		t.Fatal("panel hidden after hovering a described node")
	}
	if m.hovered != "jane" {
		t.Fatalf("hovered = %q", m.hovered)
	}

	// Leaving arms the hide delay; the panel stays up until it elapses.
	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	if !m.panel.Visible() {
		t.Fatal("panel hid immediately on leave")
	}
	m = tick(m, 30)
	if m.panel.Visible() {
		t.Fatal("panel still visible after the hide delay")
	}
}

func TestHover_NoPanelWithoutDescription(t *testing.T) {
	m := sized(t, 80, 24)
	col, row := moveTo(m, "work", 40, 22)

	m = update(t, m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	if m.panel.Visible() {
		t.Error("panel shown for a node with no description")
	}
}

func TestHover_PointerOnPanelCancelsHide(t *testing.T) {
	m := sized(t, 80, 24)
	col, row := moveTo(m, "jane", 40, 10)

	m = update(t, m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})

	// Move onto the panel region before the delay elapses.
	panelRow := m.canvasShownRows() + 2
	m = update(t, m, tea.MouseMsg{X: 5, Y: panelRow, Action: tea.MouseActionMotion})
	m = tick(m, 40)
	if !m.panel.Visible() {
		t.Error("panel hid while the pointer was on it")
	}
}

func TestDrag_PinsAndReleases(t *testing.T) {
	m := sized(t, 80, 24)
	col, row := moveTo(m, "jane", 40, 22)

	m = update(t, m, tea.MouseMsg{X: col, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	n := m.v.Dragging()
	if n == nil || n.ID != "jane" {
		t.Fatalf("dragging = %v, want jane", n)
	}
	if n.Fixed == nil {
		t.Fatal("dragged node not pinned")
	}

	m = update(t, m, tea.MouseMsg{X: col + 10, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if n.Fixed == nil || math.Abs(n.Fixed.X-float64(col+10)) > 1e-9 {
		t.Fatalf("pin did not follow pointer: %+v", n.Fixed)
	}

	m = update(t, m, tea.MouseMsg{X: col + 10, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if m.v.Dragging() != nil {
		t.Error("still dragging after release")
	}
	if n.Fixed != nil {
		t.Error("node still pinned after release")
	}
}

func TestPan_BackgroundDrag(t *testing.T) {
	m := sized(t, 80, 24)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{X: 11, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})

	if got := m.v.Transform().X; got != 10 {
		t.Errorf("pan dx = %v, want 10", got)
	}
}

func TestView_RendersFrame(t *testing.T) {
	m := sized(t, 80, 24)
	out := m.View()

	if !strings.Contains(out, "vitae") {
		t.Error("view missing header")
	}
	if !strings.Contains(out, "2 entries") {
		t.Error("view missing entry count")
	}
	if !strings.Contains(out, "zoom") {
		t.Error("view missing status bar")
	}
}

func TestView_BeforeFirstSize(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); !strings.Contains(out, "loading") {
		t.Errorf("pre-size view = %q", out)
	}
}
