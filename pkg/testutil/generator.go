// Package testutil provides test fixture builders for CV tree topologies
// and deterministic helpers for timing-sensitive tests. All builders
// produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// Graph is a node/link fixture ready to feed a simulation or scene.
type Graph struct {
	Nodes []*model.Node
	Links []*model.Link
}

// Node returns the node with the given ID, or nil.
func (g Graph) Node(id string) *model.Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Chain builds a linear CV branch: root -> n1 -> n2 -> ...
func Chain(size int) Graph {
	var g Graph
	for i := 0; i < size; i++ {
		n := model.NewNode(fmt.Sprintf("n%d", i))
		n.Depth = i
		if i > 0 {
			n.RelSize = 0.65
			n.RelDistance = 0.6
		}
		g.Nodes = append(g.Nodes, n)
		if i > 0 {
			g.Links = append(g.Links, &model.Link{Source: g.Nodes[i-1], Target: n})
		}
	}
	return g
}

// Star builds a root with the given number of direct children.
func Star(children int) Graph {
	var g Graph
	root := model.NewNode("root")
	g.Nodes = append(g.Nodes, root)
	for i := 0; i < children; i++ {
		c := model.NewNode(fmt.Sprintf("c%d", i))
		c.Depth = 1
		c.RelSize = 0.65
		c.RelDistance = 0.6
		g.Nodes = append(g.Nodes, c)
		g.Links = append(g.Links, &model.Link{Source: root, Target: c})
	}
	return g
}

// Tree builds a balanced tree with the given depth and branching factor.
// RelSize and RelDistance shrink with depth the way a rendered CV does.
func Tree(depth, breadth int) Graph {
	var g Graph
	root := model.NewNode("n0")
	g.Nodes = append(g.Nodes, root)

	id := 1
	level := []*model.Node{root}
	for d := 1; d <= depth; d++ {
		var next []*model.Node
		for _, parent := range level {
			for b := 0; b < breadth; b++ {
				c := model.NewNode(fmt.Sprintf("n%d", id))
				id++
				c.Depth = d
				c.RelSize = 1 / float64(d+1)
				c.RelDistance = 1 / float64(d+1)
				g.Nodes = append(g.Nodes, c)
				g.Links = append(g.Links, &model.Link{Source: parent, Target: c})
				next = append(next, c)
			}
		}
		level = next
	}
	return g
}
