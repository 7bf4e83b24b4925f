package interact_test

import (
	"math"
	"testing"

	"github.com/vanderheijden86/vitae/pkg/interact"
	"github.com/vanderheijden86/vitae/pkg/model"
	"github.com/vanderheijden86/vitae/pkg/testutil"
)

func TestTransform_ApplyInvertRoundTrip(t *testing.T) {
	tr := interact.Transform{X: 50, Y: -20, Scale: 2}
	sx, sy := tr.Apply(100, 200)
	if sx != 250 || sy != 380 {
		t.Fatalf("Apply = (%v,%v), want (250,380)", sx, sy)
	}
	x, y := tr.Invert(sx, sy)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Fatalf("Invert round trip = (%v,%v)", x, y)
	}
}

func TestPanZoom_PanAccumulates(t *testing.T) {
	p := interact.NewPanZoom(nil)
	p.PanBy(10, 20)
	p.PanBy(-4, 5)
	tr := p.Transform()
	if tr.X != 6 || tr.Y != 25 || tr.Scale != 1 {
		t.Fatalf("transform = %+v", tr)
	}
}

func TestPanZoom_ZoomKeepsAnchorFixed(t *testing.T) {
	p := interact.NewPanZoom(nil)
	p.PanBy(30, 40)

	before := p.Transform()
	wx, wy := before.Invert(100, 100) // world point under the anchor
	p.ZoomBy(1.5, 100, 100)
	after := p.Transform()

	sx, sy := after.Apply(wx, wy)
	if math.Abs(sx-100) > 1e-9 || math.Abs(sy-100) > 1e-9 {
		t.Fatalf("anchor drifted to (%v,%v)", sx, sy)
	}
	if math.Abs(after.Scale-1.5) > 1e-9 {
		t.Fatalf("scale = %v, want 1.5", after.Scale)
	}
}

func TestPanZoom_ScaleClamped(t *testing.T) {
	p := interact.NewPanZoom(nil)
	for i := 0; i < 20; i++ {
		p.ZoomBy(2, 0, 0)
	}
	if got := p.Transform().Scale; got != interact.MaxScale {
		t.Fatalf("scale = %v, want clamped to %v", got, interact.MaxScale)
	}
	for i := 0; i < 40; i++ {
		p.ZoomBy(0.5, 0, 0)
	}
	if got := p.Transform().Scale; got != interact.MinScale {
		t.Fatalf("scale = %v, want clamped to %v", got, interact.MinScale)
	}
}

func TestPanZoom_GestureHidesTooltip(t *testing.T) {
	tip := &recordingTooltip{}
	sched := testutil.NewManualScheduler()
	tc := interact.NewTooltipController(tip, sched, 80)
	p := interact.NewPanZoom(tc)

	tc.EnterNode(model.NewNode("a"))
	p.PanBy(5, 0)
	if tip.visible {
		t.Fatal("pan must force-hide the tooltip")
	}

	tc.EnterNode(model.NewNode("b"))
	p.ZoomBy(1.2, 0, 0)
	if tip.visible {
		t.Fatal("zoom must force-hide the tooltip")
	}
}

func TestPanZoom_Reset(t *testing.T) {
	p := interact.NewPanZoom(nil)
	p.PanBy(10, 10)
	p.ZoomBy(2, 50, 50)
	p.Reset()
	if p.Transform() != interact.IdentityTransform() {
		t.Fatalf("reset transform = %+v", p.Transform())
	}
}
