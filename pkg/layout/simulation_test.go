package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/vitae/pkg/model"
)

func TestAddNode_PlacesUnpositionedNodes(t *testing.T) {
	sim := NewSimulation()
	sim.SetCenter(500, 400)

	positions := make(map[string]r2.Vec)
	for _, id := range []string{"a", "b", "c", "d"} {
		n := model.NewNode(id)
		sim.AddNode(n)
		if !n.Placed() {
			t.Fatalf("node %s not placed after AddNode", id)
		}
		positions[id] = n.Pos
	}

	// phyllotaxis: every node gets a distinct spot near the center
	seen := make(map[r2.Vec]bool)
	for id, p := range positions {
		if seen[p] {
			t.Fatalf("node %s placed on top of another node", id)
		}
		seen[p] = true
		if math.Hypot(p.X-500, p.Y-400) > 100 {
			t.Fatalf("node %s placed far from center: %+v", id, p)
		}
	}
}

func TestAddNode_KeepsExplicitPosition(t *testing.T) {
	sim := NewSimulation()
	n := model.NewNode("a")
	n.Pos = r2.Vec{X: 42, Y: 7}
	sim.AddNode(n)
	if n.Pos.X != 42 || n.Pos.Y != 7 {
		t.Fatalf("explicit position overwritten: %+v", n.Pos)
	}
}

func TestTick_AlphaDecaysTowardTarget(t *testing.T) {
	sim := NewSimulation()
	sim.AddNode(model.NewNode("a"))

	before := sim.Alpha()
	sim.Tick()
	if sim.Alpha() >= before {
		t.Fatalf("alpha should decay: %v -> %v", before, sim.Alpha())
	}

	sim.SetAlphaTarget(AlphaReheat)
	for i := 0; i < 2000; i++ {
		sim.Tick()
	}
	if math.Abs(sim.Alpha()-AlphaReheat) > 0.01 {
		t.Fatalf("alpha should relax to target %v, got %v", AlphaReheat, sim.Alpha())
	}
}

func TestSettled(t *testing.T) {
	sim := NewSimulation()
	sim.AddNode(model.NewNode("a"))
	if sim.Settled() {
		t.Fatal("fresh simulation must not report settled")
	}
	ticks := sim.Settle(5000)
	if !sim.Settled() {
		t.Fatalf("simulation did not settle within %d ticks", ticks)
	}
	// decay is tuned for roughly 300 ticks to full settle
	if ticks < 100 || ticks > 1000 {
		t.Fatalf("settle took %d ticks, outside expected range", ticks)
	}

	sim.SetAlphaTarget(AlphaReheat)
	if sim.Settled() {
		t.Fatal("raised alpha target must wake the simulation")
	}
}

func TestTick_PinOverridesSimulation(t *testing.T) {
	sim := NewSimulation()
	cfg := ComputeConfig(1000, 1000)

	a := model.NewNode("a")
	b := model.NewNode("b")
	sim.AddNode(a)
	sim.AddNode(b)
	sim.SetForce("charge", NewManyBody(cfg.ChargeStrength))

	a.Pin(123, 456)
	sim.SetAlpha(AlphaFull)
	for i := 0; i < 50; i++ {
		sim.Tick()
		if a.Pos.X != 123 || a.Pos.Y != 456 {
			t.Fatalf("tick %d: pinned node drifted to %+v", i, a.Pos)
		}
		if a.Vel != (r2.Vec{}) {
			t.Fatalf("tick %d: pinned node kept velocity %+v", i, a.Vel)
		}
	}

	a.Unpin()
	sim.SetAlpha(AlphaReheat)
	sim.Tick()
	sim.Tick()
	if a.Pos.X == 123 && a.Pos.Y == 456 {
		t.Fatal("unpinned node should resume free simulation")
	}
}

func TestOnTick_FiresEveryStep(t *testing.T) {
	sim := NewSimulation()
	sim.AddNode(model.NewNode("a"))

	count := 0
	sim.OnTick(func() { count++ })
	for i := 0; i < 7; i++ {
		sim.Tick()
	}
	if count != 7 {
		t.Fatalf("tick callback fired %d times, want 7", count)
	}
}

func TestSetForce_ReplacesWholesale(t *testing.T) {
	sim := NewSimulation()
	sim.AddNode(model.NewNode("a"))

	first := NewBoundary(800, 600, 64)
	sim.SetForce("boundary", first)
	second := NewBoundary(1600, 1200, 128)
	sim.SetForce("boundary", second)

	names := sim.ForceNames()
	if len(names) != 1 || names[0] != "boundary" {
		t.Fatalf("ForceNames = %v", names)
	}

	sim.RemoveForce("boundary")
	if len(sim.ForceNames()) != 0 {
		t.Fatal("RemoveForce left the force installed")
	}
}

// End-to-end: a root and one child connected by a spring settle near the
// spring rest length without leaving the viewport.
func TestSettle_TwoNodeTreeApproachesRestLength(t *testing.T) {
	const w, h = 1000.0, 1000.0
	cfg := ComputeConfig(w, h)

	root := model.NewNode("A")
	child := model.NewNode("B")
	child.RelSize = 0.65
	child.RelDistance = 0.6
	link := &model.Link{Source: root, Target: child}

	sim := NewSimulation()
	sim.SetCenter(w/2, h/2)
	sim.AddNode(root)
	sim.AddNode(child)
	sim.SetForce("charge", NewManyBody(cfg.ChargeStrength))
	sim.SetForce("collide", NewCollide(cfg.CircleRadiusUnit))
	sim.SetForce("center", NewCenter(w/2, h/2))
	sim.SetForce("boundary", NewBoundary(w, h, cfg.CircleRadiusUnit))
	sim.SetForce("link", NewLinkSpring([]*model.Link{link}, cfg.LinkDistanceUnit))

	sim.Settle(5000)

	rest := child.RelDistance * cfg.LinkDistanceUnit // 180
	dist := math.Hypot(root.Pos.X-child.Pos.X, root.Pos.Y-child.Pos.Y)
	if math.Abs(dist-rest) > rest*0.35 {
		t.Errorf("settled distance %v too far from rest length %v", dist, rest)
	}

	for _, n := range []*model.Node{root, child} {
		r := n.Radius(cfg.CircleRadiusUnit)
		if n.Pos.X < r-1 || n.Pos.X > w-r+1 || n.Pos.Y < r-1 || n.Pos.Y > h-r+1 {
			t.Errorf("node %s disc crosses viewport boundary: pos=%+v r=%v", n.ID, n.Pos, r)
		}
	}
}
