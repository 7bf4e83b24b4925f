// Package scene maintains the rendered representation of the graph: one
// grouped circle element per node, one line per link, and one image-fill
// pattern definition per node, all kept in sync with the node/link
// collections by identity-keyed diffing.
package scene

import (
	"fmt"

	"github.com/vanderheijden86/vitae/pkg/debug"
	"github.com/vanderheijden86/vitae/pkg/model"
)

// NodeElement is the rendered group for one node: a circle filled with the
// node's avatar pattern, translated to the node position on every tick.
type NodeElement struct {
	Node   *model.Node
	X, Y   float64
	Radius float64
}

// LineElement is the rendered line for one link.
type LineElement struct {
	Link           *model.Link
	X1, Y1, X2, Y2 float64
}

// Pattern is the image-fill definition backing a node circle. Patterns are
// created exactly once per node and resized in place on config change.
type Pattern struct {
	NodeID string
	Href   string
	Size   float64 // RelSize × CircleRadiusUnit × 2
}

// Stats counts element churn, used to verify the diff never recreates
// persisting elements.
type Stats struct {
	NodesCreated    int
	NodesRemoved    int
	LinesCreated    int
	LinesRemoved    int
	PatternsCreated int
	PatternsRemoved int
	PatternsResized int
}

// Scene is the identity-keyed element store. It has no opinion about how
// elements reach pixels; the SVG and PNG writers walk PaintOrder.
type Scene struct {
	circleRadiusUnit float64

	nodes    map[string]*NodeElement
	lines    map[string]*LineElement
	patterns map[string]*Pattern

	// paint order: all lines first, then nodes, so links never occlude
	// node avatars. Rebuilt on every update.
	order []any

	stats Stats
}

// New creates an empty scene for the given radius unit.
func New(circleRadiusUnit float64) *Scene {
	return &Scene{
		circleRadiusUnit: circleRadiusUnit,
		nodes:            make(map[string]*NodeElement),
		lines:            make(map[string]*LineElement),
		patterns:         make(map[string]*Pattern),
	}
}

// Stats returns the element churn counters.
func (s *Scene) Stats() Stats { return s.stats }

// CircleRadiusUnit returns the current radius unit.
func (s *Scene) CircleRadiusUnit() float64 { return s.circleRadiusUnit }

// Node returns the rendered element for a node ID, or nil.
func (s *Scene) Node(id string) *NodeElement { return s.nodes[id] }

// Line returns the rendered element for a link, or nil.
func (s *Scene) Line(l *model.Link) *LineElement { return s.lines[l.Key()] }

// PatternFor returns the pattern definition for a node ID, or nil.
func (s *Scene) PatternFor(id string) *Pattern { return s.patterns[id] }

// Update diffs the scene against the given collections. Entering nodes and
// links get fresh elements (and, for nodes, a pattern definition);
// persisting ones are left untouched; exiting ones are removed. Lines are
// re-ordered in front of the paint list on every update so they stay
// behind the node groups.
func (s *Scene) Update(nodes []*model.Node, links []*model.Link) {
	wantNodes := make(map[string]*model.Node, len(nodes))
	for _, n := range nodes {
		wantNodes[n.ID] = n
		if _, ok := s.nodes[n.ID]; ok {
			continue
		}
		s.nodes[n.ID] = &NodeElement{Node: n, Radius: n.Radius(s.circleRadiusUnit)}
		s.stats.NodesCreated++
		s.patterns[n.ID] = &Pattern{
			NodeID: n.ID,
			Href:   n.Image,
			Size:   n.Radius(s.circleRadiusUnit) * 2,
		}
		s.stats.PatternsCreated++
		debug.Log("scene: enter node %s", n.ID)
	}
	for id := range s.nodes {
		if _, ok := wantNodes[id]; !ok {
			delete(s.nodes, id)
			s.stats.NodesRemoved++
			delete(s.patterns, id)
			s.stats.PatternsRemoved++
			debug.Log("scene: exit node %s", id)
		}
	}

	wantLines := make(map[string]*model.Link, len(links))
	for _, l := range links {
		key := l.Key()
		wantLines[key] = l
		if _, ok := s.lines[key]; ok {
			continue
		}
		s.lines[key] = &LineElement{Link: l}
		s.stats.LinesCreated++
	}
	for key := range s.lines {
		if _, ok := wantLines[key]; !ok {
			delete(s.lines, key)
			s.stats.LinesRemoved++
		}
	}

	s.rebuildOrder(nodes, links)
}

func (s *Scene) rebuildOrder(nodes []*model.Node, links []*model.Link) {
	s.order = s.order[:0]
	for _, l := range links {
		s.order = append(s.order, s.lines[l.Key()])
	}
	for _, n := range nodes {
		s.order = append(s.order, s.nodes[n.ID])
	}
}

// PaintOrder returns the elements back to front: lines, then node groups.
func (s *Scene) PaintOrder() []any { return s.order }

// ApplyTick writes the current simulation positions into the elements.
// A link endpoint without a defined position is a broken invariant (the
// simulation places every node before the first tick), so this fails loudly
// rather than rendering garbage.
func (s *Scene) ApplyTick() {
	for _, le := range s.lines {
		src, dst := le.Link.Source, le.Link.Target
		if !src.Placed() || !dst.Placed() {
			panic(fmt.Sprintf("scene: link %s has an unplaced endpoint at tick time", le.Link))
		}
		le.X1, le.Y1 = src.Pos.X, src.Pos.Y
		le.X2, le.Y2 = dst.Pos.X, dst.Pos.Y
	}
	for _, ne := range s.nodes {
		ne.X, ne.Y = ne.Node.Pos.X, ne.Node.Pos.Y
	}
}

// Rescale applies a new radius unit after a viewport resize: every disc
// radius and every pattern definition is updated in place, never recreated.
func (s *Scene) Rescale(circleRadiusUnit float64) {
	s.circleRadiusUnit = circleRadiusUnit
	for _, ne := range s.nodes {
		ne.Radius = ne.Node.Radius(circleRadiusUnit)
	}
	for id, p := range s.patterns {
		p.Size = s.nodes[id].Radius * 2
		s.stats.PatternsResized++
	}
}
