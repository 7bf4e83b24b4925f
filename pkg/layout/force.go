package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// Force is one independent contribution to the simulation step. Forces read
// current node positions/velocities and write velocity (or, for the
// centering force, position) deltas scaled by alpha.
//
// A force captures its tuning constants by value at construction time.
// When Config changes the whole force set is recomposed, never patched.
type Force interface {
	Initialize(nodes []*model.Node)
	Apply(alpha float64)
}

// barnesHutThreshold is the node count above which many-body repulsion
// switches from the exact pairwise pass to the quadtree approximation.
const barnesHutThreshold = 64

// ManyBody repels every node pair with inverse-square falloff, scaled by
// the (negative) charge strength.
type ManyBody struct {
	Strength float64
	Theta    float64 // Barnes-Hut accuracy, 0 means default 0.9

	nodes []*model.Node
}

// NewManyBody builds the repulsion force for the given charge strength.
func NewManyBody(strength float64) *ManyBody {
	return &ManyBody{Strength: strength, Theta: 0.9}
}

func (f *ManyBody) Initialize(nodes []*model.Node) { f.nodes = nodes }

func (f *ManyBody) Apply(alpha float64) {
	if f.Strength == 0 || len(f.nodes) < 2 {
		return
	}
	if len(f.nodes) > barnesHutThreshold {
		f.applyBarnesHut(alpha)
		return
	}
	for i, a := range f.nodes {
		for j, b := range f.nodes {
			if i == j {
				continue
			}
			a.Vel = r2.Add(a.Vel, pointCharge(a.Pos, b.Pos, f.Strength*alpha))
		}
	}
}

func (f *ManyBody) applyBarnesHut(alpha float64) {
	qt := buildQuadTree(f.nodes)
	theta := f.Theta
	if theta == 0 {
		theta = 0.9
	}
	for _, n := range f.nodes {
		n.Vel = r2.Add(n.Vel, qt.accumulate(n, theta, f.Strength*alpha))
	}
}

// pointCharge is the velocity delta on a node at pos from a unit charge at
// src, using the same jiggle-free minimum distance as the exact pass.
func pointCharge(pos, src r2.Vec, k float64) r2.Vec {
	d := r2.Sub(pos, src)
	dist2 := d.X*d.X + d.Y*d.Y
	if dist2 < 1 {
		dist2 = 1
	}
	// charge is repulsive for negative k on the source side; the sign is
	// carried by k itself so attraction would also work.
	return r2.Scale(-k/dist2, r2.Scale(1/math.Sqrt(dist2), d))
}

// Collide resolves overlaps between node discs of radius
// RelSize × CircleRadiusUnit so they do not interpenetrate.
type Collide struct {
	CircleRadiusUnit float64
	Iterations       int // 0 means 1

	nodes []*model.Node
}

// NewCollide builds the collision force for the given radius unit.
func NewCollide(circleRadiusUnit float64) *Collide {
	return &Collide{CircleRadiusUnit: circleRadiusUnit, Iterations: 1}
}

func (f *Collide) Initialize(nodes []*model.Node) { f.nodes = nodes }

func (f *Collide) Apply(alpha float64) {
	iters := f.Iterations
	if iters < 1 {
		iters = 1
	}
	for it := 0; it < iters; it++ {
		for i := 0; i < len(f.nodes); i++ {
			for j := i + 1; j < len(f.nodes); j++ {
				f.resolve(f.nodes[i], f.nodes[j])
			}
		}
	}
}

func (f *Collide) resolve(a, b *model.Node) {
	ra := a.Radius(f.CircleRadiusUnit)
	rb := b.Radius(f.CircleRadiusUnit)
	d := r2.Sub(r2.Add(b.Pos, b.Vel), r2.Add(a.Pos, a.Vel))
	dist := math.Hypot(d.X, d.Y)
	min := ra + rb
	if dist >= min || min == 0 {
		return
	}
	if dist == 0 {
		// coincident discs: separate along a fixed axis
		d = r2.Vec{X: min, Y: 0}
		dist = min
	}
	overlap := (min - dist) / dist
	// heavier (larger) disc moves less
	wa := rb * rb / (ra*ra + rb*rb)
	push := r2.Scale(overlap, d)
	a.Vel = r2.Sub(a.Vel, r2.Scale(wa, push))
	b.Vel = r2.Add(b.Vel, r2.Scale(1-wa, push))
}

// Center drifts the whole node set so its centroid approaches the viewport
// center. It adjusts positions directly, not velocities, so it adds no
// energy to the system.
type Center struct {
	X, Y     float64
	Strength float64

	nodes []*model.Node
}

// NewCenter builds the centering force toward (x, y) with the weak default
// strength used by the visualizer.
func NewCenter(x, y float64) *Center {
	return &Center{X: x, Y: y, Strength: 0.1}
}

func (f *Center) Initialize(nodes []*model.Node) { f.nodes = nodes }

func (f *Center) Apply(alpha float64) {
	if len(f.nodes) == 0 {
		return
	}
	var sum r2.Vec
	for _, n := range f.nodes {
		sum = r2.Add(sum, n.Pos)
	}
	centroid := r2.Scale(1/float64(len(f.nodes)), sum)
	shift := r2.Scale(f.Strength, r2.Vec{X: f.X - centroid.X, Y: f.Y - centroid.Y})
	for _, n := range f.nodes {
		n.Pos = r2.Add(n.Pos, shift)
	}
}

// Boundary is a soft spring keeping each disc inside
// [r, width-r] × [r, height-r]. Nodes may transiently exceed the bound
// under strong outward force; this is intentional, a hard clamp changes
// the observed layout behaviour.
type Boundary struct {
	Width, Height    float64
	CircleRadiusUnit float64
	Strength         float64

	nodes []*model.Node
}

// NewBoundary builds the containment force for the given viewport.
func NewBoundary(width, height, circleRadiusUnit float64) *Boundary {
	return &Boundary{
		Width:            width,
		Height:           height,
		CircleRadiusUnit: circleRadiusUnit,
		Strength:         0.3,
	}
}

func (f *Boundary) Initialize(nodes []*model.Node) { f.nodes = nodes }

func (f *Boundary) Apply(alpha float64) {
	k := f.Strength * alpha
	for _, n := range f.nodes {
		r := n.Radius(f.CircleRadiusUnit)
		if n.Pos.X <= r {
			n.Vel.X += (r - n.Pos.X) * k
		} else if n.Pos.X >= f.Width-r {
			n.Vel.X -= (n.Pos.X - (f.Width - r)) * k
		}
		if n.Pos.Y <= r {
			n.Vel.Y += (r - n.Pos.Y) * k
		} else if n.Pos.Y >= f.Height-r {
			n.Vel.Y -= (n.Pos.Y - (f.Height - r)) * k
		}
	}
}

// LinkSpring pulls each link's endpoints toward a rest length of
// target.RelDistance × LinkDistanceUnit. Intentionally soft: repulsion and
// containment dominate the layout shape, the spring mainly keeps chains
// from freely rotating.
type LinkSpring struct {
	Links            []*model.Link
	LinkDistanceUnit float64
	Strength         float64
}

// NewLinkSpring builds the spring force over the given links.
func NewLinkSpring(links []*model.Link, linkDistanceUnit float64) *LinkSpring {
	return &LinkSpring{
		Links:            links,
		LinkDistanceUnit: linkDistanceUnit,
		Strength:         0.07,
	}
}

func (f *LinkSpring) Initialize(nodes []*model.Node) {}

func (f *LinkSpring) Apply(alpha float64) {
	for _, l := range f.Links {
		rest := l.Target.RelDistance * f.LinkDistanceUnit
		d := r2.Sub(
			r2.Add(l.Target.Pos, l.Target.Vel),
			r2.Add(l.Source.Pos, l.Source.Vel),
		)
		dist := math.Hypot(d.X, d.Y)
		if dist == 0 {
			dist = 1e-6
			d = r2.Vec{X: dist, Y: 0}
		}
		scale := (dist - rest) / dist * f.Strength * alpha
		half := r2.Scale(scale/2, d)
		l.Target.Vel = r2.Sub(l.Target.Vel, half)
		l.Source.Vel = r2.Add(l.Source.Vel, half)
	}
}
