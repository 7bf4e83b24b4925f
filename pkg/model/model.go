// Package model defines the node and link types shared by the layout
// simulation, the scene renderer, and the exporters.
//
// Nodes are appended once and mutated in place by the simulation; external
// callers never remove or rewrite them. A link always references two nodes
// that are already part of the active collection.
package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Common validation errors.
var (
	ErrEmptyID        = errors.New("node id must not be empty")
	ErrNonPositive    = errors.New("rel_size and rel_distance must be > 0")
	ErrNilEndpoint    = errors.New("link endpoints must not be nil")
	ErrSelfLink       = errors.New("link source and target must differ")
)

// Node is one CV entry placed on the drawing surface.
//
// Pos and Vel belong to the simulation. A freshly constructed node has an
// undefined position (NaN) until the simulation places it; the scene
// renderer treats an undefined position at tick time as a broken invariant.
type Node struct {
	ID          string
	Image       string // avatar URL used for the circle fill pattern
	Description string // markdown, may be empty (no tooltip then)
	RelSize     float64
	RelDistance float64
	Depth       int

	Pos r2.Vec
	Vel r2.Vec

	// Fixed pins the node: while set, the simulation ignores velocity and
	// keeps the node exactly at the pin.
	Fixed *r2.Vec
}

// NewNode constructs a node with an undefined position.
func NewNode(id string) *Node {
	return &Node{
		ID:          id,
		RelSize:     1,
		RelDistance: 1,
		Pos:         r2.Vec{X: math.NaN(), Y: math.NaN()},
	}
}

// Validate checks the authoring invariants.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.RelSize <= 0 || n.RelDistance <= 0 {
		return fmt.Errorf("node %s: %w", n.ID, ErrNonPositive)
	}
	return nil
}

// Placed reports whether the simulation has assigned a position yet.
func (n *Node) Placed() bool {
	return !math.IsNaN(n.Pos.X) && !math.IsNaN(n.Pos.Y)
}

// Radius returns the disc radius for the given scale unit.
func (n *Node) Radius(circleRadiusUnit float64) float64 {
	return n.RelSize * circleRadiusUnit
}

// Pin fixes the node at (x, y) until Unpin is called.
func (n *Node) Pin(x, y float64) {
	n.Fixed = &r2.Vec{X: x, Y: y}
}

// Unpin releases the node back to free simulation.
func (n *Node) Unpin() {
	n.Fixed = nil
}

// Link is a directed parent→child edge, used both as a simulation spring
// and as a rendered line.
type Link struct {
	Source *Node // parent
	Target *Node // child
}

// Validate checks the link invariants against construction-time state.
func (l Link) Validate() error {
	if l.Source == nil || l.Target == nil {
		return ErrNilEndpoint
	}
	if l.Source.ID == l.Target.ID {
		return fmt.Errorf("link %s: %w", l.Source.ID, ErrSelfLink)
	}
	return nil
}

// Key identifies the link for scene diffing.
func (l Link) Key() string {
	return l.Source.ID + "\x00" + l.Target.ID
}

func (l Link) String() string {
	return fmt.Sprintf("%s->%s", l.Source.ID, l.Target.ID)
}
