package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// Simulation defaults. Velocity decay is deliberately low so the layout
// stays lively and settles slowly.
const (
	DefaultAlphaMin      = 0.001
	DefaultVelocityDecay = 0.05

	// AlphaReheat is the temperature restored on structural change or
	// drag-start; AlphaFull on a complete re-layout such as resize.
	AlphaReheat = 0.3
	AlphaFull   = 1.0

	// initialRadius seeds the phyllotaxis placement of unpositioned nodes.
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation owns node positions and velocities and iterates the force set
// until the system cools below alphaMin. It has no rendering knowledge:
// the registered tick callback is the only place rendering happens.
//
// Not safe for concurrent use; the host event loop serializes all calls.
type Simulation struct {
	nodes  []*model.Node
	forces map[string]Force
	order  []string // force application order, insertion-stable

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	center r2.Vec // phyllotaxis placement origin
	placed int    // count of nodes this simulation has placed

	onTick func()
}

// NewSimulation constructs an idle simulation at full temperature.
// The decay rate is derived from alphaMin so a full settle takes about
// 300 ticks, matching the iterative solvers this engine is modeled on.
func NewSimulation() *Simulation {
	return &Simulation{
		forces:        make(map[string]Force),
		alpha:         AlphaFull,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    1 - math.Pow(DefaultAlphaMin, 1.0/300),
		velocityDecay: DefaultVelocityDecay,
	}
}

// OnTick registers the callback invoked after every integration step.
func (s *Simulation) OnTick(fn func()) { s.onTick = fn }

// SetCenter moves the placement origin for future nodes.
func (s *Simulation) SetCenter(x, y float64) { s.center = r2.Vec{X: x, Y: y} }

// Nodes returns the registered nodes in registration order.
func (s *Simulation) Nodes() []*model.Node { return s.nodes }

// AddNode registers a node. An unplaced node gets a deterministic
// phyllotaxis position around the center so every node has defined
// coordinates before the first tick.
func (s *Simulation) AddNode(n *model.Node) {
	if !n.Placed() {
		radius := initialRadius * math.Sqrt(0.5+float64(s.placed))
		angle := float64(s.placed) * initialAngle
		n.Pos = r2.Vec{
			X: s.center.X + radius*math.Cos(angle),
			Y: s.center.Y + radius*math.Sin(angle),
		}
		n.Vel = r2.Vec{}
	}
	s.placed++
	s.nodes = append(s.nodes, n)
	for _, name := range s.order {
		s.forces[name].Initialize(s.nodes)
	}
}

// SetForce installs or replaces the named force. Replacing recomposes the
// term wholesale; forces capture their constants by value, so a config
// change always installs fresh instances.
func (s *Simulation) SetForce(name string, f Force) {
	if _, ok := s.forces[name]; !ok {
		s.order = append(s.order, name)
	}
	s.forces[name] = f
	f.Initialize(s.nodes)
}

// RemoveForce deletes the named force if present.
func (s *Simulation) RemoveForce(name string) {
	if _, ok := s.forces[name]; !ok {
		return
	}
	delete(s.forces, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ForceNames returns the installed force names, sorted.
func (s *Simulation) ForceNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	return names
}

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha reheats (or cools) the simulation to the given temperature.
func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

// SetAlphaTarget sets the temperature the solver relaxes toward. Drag
// raises it to AlphaReheat and drops it back to 0 on release.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// AlphaTarget returns the relaxation target.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// Settled reports whether the system has cooled below alphaMin with no
// outstanding relaxation target.
func (s *Simulation) Settled() bool {
	return s.alpha < s.alphaMin && s.alphaTarget < s.alphaMin
}

// Tick advances the simulation by one step: cool alpha toward the target,
// apply every force in order, then integrate velocities into positions.
// Pinned nodes sit exactly at their pin with zero velocity.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, name := range s.order {
		s.forces[name].Apply(s.alpha)
	}

	decay := 1 - s.velocityDecay
	for _, n := range s.nodes {
		if n.Fixed != nil {
			n.Pos = *n.Fixed
			n.Vel = r2.Vec{}
			continue
		}
		n.Vel = r2.Scale(decay, n.Vel)
		n.Pos = r2.Add(n.Pos, n.Vel)
	}

	if s.onTick != nil {
		s.onTick()
	}
}

// Settle runs ticks until the simulation cools or maxTicks is reached,
// returning the number of ticks executed. Used by the static exporters.
func (s *Simulation) Settle(maxTicks int) int {
	ticks := 0
	for !s.Settled() && ticks < maxTicks {
		s.Tick()
		ticks++
	}
	return ticks
}
