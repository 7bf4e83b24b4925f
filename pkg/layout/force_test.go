package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/vitae/pkg/model"
)

func placedNode(id string, x, y float64) *model.Node {
	n := model.NewNode(id)
	n.Pos = r2.Vec{X: x, Y: y}
	return n
}

func TestManyBody_PushesPairApart(t *testing.T) {
	a := placedNode("a", 490, 500)
	b := placedNode("b", 510, 500)
	f := NewManyBody(-60)
	f.Initialize([]*model.Node{a, b})

	f.Apply(1)

	if a.Vel.X >= 0 {
		t.Errorf("left node should be pushed left, vx = %v", a.Vel.X)
	}
	if b.Vel.X <= 0 {
		t.Errorf("right node should be pushed right, vx = %v", b.Vel.X)
	}
	if math.Abs(a.Vel.X+b.Vel.X) > 1e-9 {
		t.Errorf("pair forces should be symmetric: %v vs %v", a.Vel.X, b.Vel.X)
	}
}

func TestManyBody_ZeroStrengthIsNoOp(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 5, 5)
	f := NewManyBody(0)
	f.Initialize([]*model.Node{a, b})
	f.Apply(1)
	if a.Vel != (r2.Vec{}) || b.Vel != (r2.Vec{}) {
		t.Errorf("zero charge must not move nodes: %+v %+v", a.Vel, b.Vel)
	}
}

// The Barnes-Hut pass must approximate the exact pairwise pass.
func TestManyBody_QuadTreeMatchesExact(t *testing.T) {
	count := barnesHutThreshold + 20
	exact := make([]*model.Node, 0, count)
	approx := make([]*model.Node, 0, count)
	for i := 0; i < count; i++ {
		// deterministic scatter
		x := 500 + 400*math.Cos(float64(i)*2.399)
		y := 500 + 400*math.Sin(float64(i)*1.731)
		exact = append(exact, placedNode("e", x, y))
		approx = append(approx, placedNode("a", x, y))
	}

	for i, a := range exact {
		for j, b := range exact {
			if i == j {
				continue
			}
			a.Vel = r2.Add(a.Vel, pointCharge(a.Pos, b.Pos, -60))
		}
	}

	fa := NewManyBody(-60)
	fa.Initialize(approx)
	fa.Apply(1)

	for i := range exact {
		dx := exact[i].Vel.X - approx[i].Vel.X
		dy := exact[i].Vel.Y - approx[i].Vel.Y
		mag := math.Hypot(exact[i].Vel.X, exact[i].Vel.Y)
		if math.Hypot(dx, dy) > 0.25*mag+1e-6 {
			t.Fatalf("node %d: barnes-hut %v diverges from exact %v", i, approx[i].Vel, exact[i].Vel)
		}
	}
}

func TestCollide_SeparatesOverlappingDiscs(t *testing.T) {
	a := placedNode("a", 500, 500)
	b := placedNode("b", 510, 500) // overlapping: radii 80 each at unit 80
	f := NewCollide(80)
	f.Initialize([]*model.Node{a, b})

	f.Apply(1)

	if a.Vel.X >= 0 || b.Vel.X <= 0 {
		t.Errorf("discs should separate: a.vx=%v b.vx=%v", a.Vel.X, b.Vel.X)
	}
}

func TestCollide_NoOpWhenApart(t *testing.T) {
	a := placedNode("a", 100, 100)
	b := placedNode("b", 500, 500)
	f := NewCollide(80)
	f.Initialize([]*model.Node{a, b})
	f.Apply(1)
	if a.Vel != (r2.Vec{}) || b.Vel != (r2.Vec{}) {
		t.Errorf("non-overlapping discs must not move: %+v %+v", a.Vel, b.Vel)
	}
}

func TestCenter_MovesCentroidTowardCenter(t *testing.T) {
	a := placedNode("a", 100, 100)
	b := placedNode("b", 300, 100)
	f := NewCenter(500, 500)
	f.Initialize([]*model.Node{a, b})

	f.Apply(1)

	// centroid was (200,100); strength 0.1 shifts everything by (30,40)
	if math.Abs(a.Pos.X-130) > 1e-9 || math.Abs(a.Pos.Y-140) > 1e-9 {
		t.Errorf("a moved to %+v, want (130,140)", a.Pos)
	}
	if math.Abs(b.Pos.X-330) > 1e-9 || math.Abs(b.Pos.Y-140) > 1e-9 {
		t.Errorf("b moved to %+v, want (330,140)", b.Pos)
	}
	// centering adjusts positions only, never velocity
	if a.Vel != (r2.Vec{}) || b.Vel != (r2.Vec{}) {
		t.Errorf("center force must not write velocity: %+v %+v", a.Vel, b.Vel)
	}
}

// The boundary spring is a no-op for any disc strictly inside
// [r, width-r] × [r, height-r].
func TestBoundary_NoOpInsideBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(400, 2000).Draw(t, "w")
		h := rapid.Float64Range(400, 2000).Draw(t, "h")
		relSize := rapid.Float64Range(0.1, 1.5).Draw(t, "relSize")

		unit := ComputeConfig(w, h).CircleRadiusUnit
		r := relSize * unit
		if r*2 >= math.Min(w, h) {
			t.Skip("disc larger than viewport")
		}

		x := rapid.Float64Range(r+1e-6, w-r-1e-6).Draw(t, "x")
		y := rapid.Float64Range(r+1e-6, h-r-1e-6).Draw(t, "y")

		n := placedNode("n", x, y)
		n.RelSize = relSize
		f := NewBoundary(w, h, unit)
		f.Initialize([]*model.Node{n})
		f.Apply(1)

		if n.Vel != (r2.Vec{}) {
			t.Fatalf("boundary force moved an interior node at (%v,%v), r=%v: %+v", x, y, r, n.Vel)
		}
	})
}

func TestBoundary_PushesBackInward(t *testing.T) {
	n := placedNode("n", 10, 790) // past the left and bottom walls for r=80
	f := NewBoundary(800, 800, 80)
	f.Initialize([]*model.Node{n})

	f.Apply(0.5)

	// (r - x) * strength * alpha = (80-10) * 0.3 * 0.5
	if math.Abs(n.Vel.X-70*0.3*0.5) > 1e-9 {
		t.Errorf("x correction = %v, want %v", n.Vel.X, 70*0.3*0.5)
	}
	if math.Abs(n.Vel.Y+70*0.3*0.5) > 1e-9 {
		t.Errorf("y correction = %v, want %v", n.Vel.Y, -70*0.3*0.5)
	}
}

func TestBoundary_SoftNotClamped(t *testing.T) {
	n := placedNode("n", -40, 400)
	f := NewBoundary(800, 800, 80)
	f.Initialize([]*model.Node{n})
	f.Apply(1)

	// a velocity correction, not a position snap
	if n.Pos.X != -40 {
		t.Errorf("boundary must not clamp position, got x=%v", n.Pos.X)
	}
	if n.Vel.X <= 0 {
		t.Errorf("expected inward velocity, got %v", n.Vel.X)
	}
}

func TestLinkSpring_PullsTowardRestLength(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 400, 0)
	b.RelDistance = 0.6
	l := &model.Link{Source: a, Target: b}

	f := NewLinkSpring([]*model.Link{l}, 300) // rest = 0.6*300 = 180
	f.Apply(1)

	// stretched past rest: endpoints pull together
	if a.Vel.X <= 0 || b.Vel.X >= 0 {
		t.Errorf("stretched spring should contract: a.vx=%v b.vx=%v", a.Vel.X, b.Vel.X)
	}

	a2 := placedNode("a2", 0, 0)
	b2 := placedNode("b2", 100, 0)
	b2.RelDistance = 0.6
	f2 := NewLinkSpring([]*model.Link{{Source: a2, Target: b2}}, 300)
	f2.Apply(1)

	// compressed below rest: endpoints push apart
	if a2.Vel.X >= 0 || b2.Vel.X <= 0 {
		t.Errorf("compressed spring should expand: a.vx=%v b.vx=%v", a2.Vel.X, b2.Vel.X)
	}
}

func TestLinkSpring_AtRestIsNoOp(t *testing.T) {
	a := placedNode("a", 0, 0)
	b := placedNode("b", 180, 0)
	b.RelDistance = 0.6
	f := NewLinkSpring([]*model.Link{{Source: a, Target: b}}, 300)
	f.Apply(1)
	if a.Vel != (r2.Vec{}) || b.Vel != (r2.Vec{}) {
		t.Errorf("spring at rest length must not move endpoints: %+v %+v", a.Vel, b.Vel)
	}
}

// Zero-size viewport collapses every force to zero magnitude.
func TestForces_DegenerateConfigFreezesMotion(t *testing.T) {
	cfg := ComputeConfig(0, 0)
	a := placedNode("a", 0, 0)
	b := placedNode("b", 1, 0)
	nodes := []*model.Node{a, b}
	link := &model.Link{Source: a, Target: b}

	forces := []Force{
		NewManyBody(cfg.ChargeStrength),
		NewBoundary(0, 0, cfg.CircleRadiusUnit),
		NewLinkSpring([]*model.Link{link}, cfg.LinkDistanceUnit),
	}
	for _, f := range forces {
		f.Initialize(nodes)
		f.Apply(1)
	}

	for _, n := range nodes {
		if math.IsNaN(n.Vel.X) || math.IsNaN(n.Vel.Y) {
			t.Fatalf("degenerate config produced NaN velocity: %+v", n.Vel)
		}
	}
}
