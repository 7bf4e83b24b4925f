package ui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/vitae/pkg/interact"
	"github.com/vanderheijden86/vitae/pkg/model"
)

// cellAspect converts cell rows to the square pixel space the simulation
// runs in. Terminal cells are roughly twice as tall as they are wide, so
// one row covers two simulation pixels.
const cellAspect = 2.0

// Canvas rasterizes the graph into a grid of terminal cells. Links are
// painted first, then discs, then labels, mirroring the paint order of
// the scene itself.
type Canvas struct {
	cols, rows int
}

// NewCanvas creates a canvas of the given cell dimensions.
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{cols: cols, rows: rows}
}

// Resize changes the canvas dimensions.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// PixelSize returns the simulation viewport the canvas covers.
func (c *Canvas) PixelSize() (w, h float64) {
	return float64(c.cols), float64(c.rows) * cellAspect
}

// RenderOptions control a single canvas pass.
type RenderOptions struct {
	ShowLabels bool
	HoveredID  string
}

// Render draws the nodes and links through the view transform and
// returns the framed text. Unplaced nodes are skipped; they will appear
// once the simulation assigns them a position.
func (c *Canvas) Render(nodes []*model.Node, links []*model.Link, tr interact.Transform, opts RenderOptions) string {
	if c.cols <= 0 || c.rows <= 0 {
		return ""
	}

	cells := make([][]string, c.rows)
	for i := range cells {
		cells[i] = make([]string, c.cols)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}

	for _, l := range links {
		if !l.Source.Placed() || !l.Target.Placed() {
			continue
		}
		x0, y0 := c.toCell(tr, l.Source.Pos.X, l.Source.Pos.Y)
		x1, y1 := c.toCell(tr, l.Target.Pos.X, l.Target.Pos.Y)
		c.drawLine(cells, x0, y0, x1, y1)
	}

	for _, n := range nodes {
		if !n.Placed() {
			continue
		}
		col, row := c.toCell(tr, n.Pos.X, n.Pos.Y)
		if !c.inBounds(col, row) {
			continue
		}
		hovered := n.ID == opts.HoveredID
		cells[row][col] = NodeStyle(n.Depth, hovered).Render(NodeGlyph(n.Depth))
		if opts.ShowLabels {
			c.drawLabel(cells, n, col, row, hovered)
		}
	}

	var sb strings.Builder
	for i, row := range cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, ""))
	}
	return sb.String()
}

func (c *Canvas) drawLabel(cells [][]string, n *model.Node, col, row int, hovered bool) {
	start := col + 2
	if start >= c.cols {
		return
	}
	label := truncate(n.ID, c.cols-start)
	style := LabelStyle
	if hovered {
		style = HoverLabelStyle
	}
	for i, r := range label {
		x := start + runewidth.StringWidth(label[:i])
		if x >= c.cols {
			break
		}
		cells[row][x] = style.Render(string(r))
	}
}

// drawLine marks the cells along the segment with a faint dot, leaving
// already drawn cells alone so discs and labels stay on top.
func (c *Canvas) drawLine(cells [][]string, x0, y0, x1, y1 int) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		if c.inBounds(x, y) && cells[y][x] == " " {
			cells[y][x] = LinkStyle.Render("·")
		}
	}
}

func (c *Canvas) toCell(tr interact.Transform, x, y float64) (col, row int) {
	sx, sy := tr.Apply(x, y)
	return int(math.Round(sx)), int(math.Round(sy / cellAspect))
}

func (c *Canvas) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// NodeAt returns the placed node under the cell, or nil. The pick radius
// follows the rendered disc size with a one-cell slack so small discs
// stay hoverable.
func NodeAt(nodes []*model.Node, tr interact.Transform, col, row int, radiusUnit float64) *model.Node {
	px := float64(col)
	py := float64(row) * cellAspect

	var best *model.Node
	bestDist := math.Inf(1)
	for _, n := range nodes {
		if !n.Placed() {
			continue
		}
		sx, sy := tr.Apply(n.Pos.X, n.Pos.Y)
		dist := math.Hypot(sx-px, sy-py)
		pick := n.Radius(radiusUnit)*tr.Scale + 1
		if dist <= pick && dist < bestDist {
			best = n
			bestDist = dist
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
