// Package viz wires the layout simulation, the scene renderer, and the
// interaction layer into one visualizer with a small append-only API.
//
// The visualizer is single-threaded by construction: it is not safe for
// concurrent use, and all deferred work (tooltip hides, resize debounce)
// goes through the injected scheduler so the host's event loop serializes
// everything.
package viz

import (
	"errors"
	"fmt"
	"time"

	"github.com/vanderheijden86/vitae/pkg/debug"
	"github.com/vanderheijden86/vitae/pkg/interact"
	"github.com/vanderheijden86/vitae/pkg/layout"
	"github.com/vanderheijden86/vitae/pkg/model"
	"github.com/vanderheijden86/vitae/pkg/scene"
)

// DefaultResizeDebounce is how long resize events must go quiet before
// the layout reconfigures.
const DefaultResizeDebounce = 500 * time.Millisecond

// Common errors.
var (
	ErrDuplicateNode   = errors.New("node id already in the collection")
	ErrDuplicateLink   = errors.New("link already in the collection")
	ErrUnknownEndpoint = errors.New("link endpoint not in the collection")
)

// Force slot names. A config change recomposes all five wholesale.
const (
	forceCharge   = "charge"
	forceCollide  = "collide"
	forceCenter   = "center"
	forceBoundary = "boundary"
	forceLink     = "link"
)

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s interact.Scheduler) Option {
	return func(v *Visualizer) { v.scheduler = s }
}

// WithTooltip installs the tooltip surface.
func WithTooltip(t interact.Tooltip) Option {
	return func(v *Visualizer) { v.tooltipSurface = t }
}

// WithResizeDebounce overrides the resize quiet period.
func WithResizeDebounce(d time.Duration) Option {
	return func(v *Visualizer) { v.resizeDelay = d }
}

// Visualizer owns the node/link collections and keeps the simulation,
// the scene, and the interaction controllers consistent with them.
type Visualizer struct {
	width, height float64
	cfg           layout.Config

	sim *layout.Simulation
	scn *scene.Scene

	nodes []*model.Node
	byID  map[string]*model.Node
	links []*model.Link
	keys  map[string]bool

	scheduler      interact.Scheduler
	tooltipSurface interact.Tooltip
	tooltip        *interact.TooltipController
	drag           *interact.DragController
	panzoom        *interact.PanZoom

	resizeDelay   time.Duration
	pendingResize interact.Handle
	pendingW      float64
	pendingH      float64
}

// New creates a visualizer for the given viewport. A zero-size viewport
// is valid: every force scales to zero magnitude and the graph freezes
// until a real size arrives.
func New(width, height float64, opts ...Option) *Visualizer {
	v := &Visualizer{
		width:       width,
		height:      height,
		byID:        make(map[string]*model.Node),
		keys:        make(map[string]bool),
		scheduler:   interact.WallClock(),
		resizeDelay: DefaultResizeDebounce,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.cfg = layout.ComputeConfig(width, height)
	v.sim = layout.NewSimulation()
	v.sim.SetCenter(width/2, height/2)
	v.scn = scene.New(v.cfg.CircleRadiusUnit)
	v.sim.OnTick(v.scn.ApplyTick)

	if v.tooltipSurface == nil {
		v.tooltipSurface = nopTooltip{}
	}
	v.tooltip = interact.NewTooltipController(v.tooltipSurface, v.scheduler, v.cfg.CircleRadiusUnit)
	v.drag = interact.NewDragController(v.sim)
	v.panzoom = interact.NewPanZoom(v.tooltip)

	v.composeForces()
	return v
}

type nopTooltip struct{}

func (nopTooltip) SetData(*model.Node, float64) {}
func (nopTooltip) Show()                        {}
func (nopTooltip) Hide()                        {}

// composeForces installs all five forces from the current config. Called
// at construction and again on every applied resize; the set is replaced
// wholesale so no force ever runs with a stale unit.
func (v *Visualizer) composeForces() {
	v.sim.SetForce(forceCharge, layout.NewManyBody(v.cfg.ChargeStrength))
	v.sim.SetForce(forceCollide, layout.NewCollide(v.cfg.CircleRadiusUnit))
	v.sim.SetForce(forceCenter, layout.NewCenter(v.width/2, v.height/2))
	v.sim.SetForce(forceBoundary, layout.NewBoundary(v.width, v.height, v.cfg.CircleRadiusUnit))
	v.sim.SetForce(forceLink, layout.NewLinkSpring(v.links, v.cfg.LinkDistanceUnit))
}

// AddNode appends a node to the collection, places it, and reheats the
// simulation so the layout absorbs it.
func (v *Visualizer) AddNode(n *model.Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if _, ok := v.byID[n.ID]; ok {
		return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNode)
	}

	v.nodes = append(v.nodes, n)
	v.byID[n.ID] = n
	v.sim.AddNode(n)
	v.scn.Update(v.nodes, v.links)
	v.reheat(layout.AlphaReheat)
	return nil
}

// AddLink appends a link. Both endpoints must already be in the
// collection, by the same pointer the caller appended.
func (v *Visualizer) AddLink(l *model.Link) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if v.byID[l.Source.ID] != l.Source || v.byID[l.Target.ID] != l.Target {
		return fmt.Errorf("link %s: %w", l, ErrUnknownEndpoint)
	}
	if v.keys[l.Key()] {
		return fmt.Errorf("link %s: %w", l, ErrDuplicateLink)
	}

	v.links = append(v.links, l)
	v.keys[l.Key()] = true
	v.sim.SetForce(forceLink, layout.NewLinkSpring(v.links, v.cfg.LinkDistanceUnit))
	v.scn.Update(v.nodes, v.links)
	v.reheat(layout.AlphaReheat)
	return nil
}

// Tick advances the simulation one step and pushes the new positions
// into the scene.
func (v *Visualizer) Tick() {
	v.sim.Tick()
}

// Settle runs ticks until the simulation cools, up to maxTicks. Used by
// the exporters.
func (v *Visualizer) Settle(maxTicks int) int {
	return v.sim.Settle(maxTicks)
}

// Settled reports whether the layout has converged.
func (v *Visualizer) Settled() bool { return v.sim.Settled() }

// ObserveResize records a new viewport size. The relayout is debounced:
// only after resize events go quiet for the configured delay does the
// config recompute, and then every force is recomposed, every disc and
// pattern rescaled in place, and the simulation reheated to full alpha.
func (v *Visualizer) ObserveResize(width, height float64) {
	v.pendingW, v.pendingH = width, height
	if v.pendingResize != nil {
		v.pendingResize.Stop()
	}
	v.pendingResize = v.scheduler.After(v.resizeDelay, func() {
		v.pendingResize = nil
		v.applyResize()
	})
}

func (v *Visualizer) applyResize() {
	v.width, v.height = v.pendingW, v.pendingH
	v.cfg = layout.ComputeConfig(v.width, v.height)
	debug.Log("viz: resize applied %gx%g, radius unit %g", v.width, v.height, v.cfg.CircleRadiusUnit)

	v.sim.SetCenter(v.width/2, v.height/2)
	v.composeForces()
	v.scn.Rescale(v.cfg.CircleRadiusUnit)
	v.tooltip.SetRadiusUnit(v.cfg.CircleRadiusUnit)
	v.sim.SetAlpha(layout.AlphaFull)
}

// PointerEnterNode shows the tooltip for the node, if it has content.
func (v *Visualizer) PointerEnterNode(id string) {
	n, ok := v.byID[id]
	if !ok || n.Description == "" {
		return
	}
	v.tooltip.EnterNode(n)
}

// PointerLeaveNode arms the tooltip hide delay.
func (v *Visualizer) PointerLeaveNode() { v.tooltip.LeaveNode() }

// PointerEnterTooltip keeps the tooltip up while the pointer is on it.
func (v *Visualizer) PointerEnterTooltip() { v.tooltip.EnterTooltip() }

// PointerLeaveTooltip re-arms the hide delay.
func (v *Visualizer) PointerLeaveTooltip() { v.tooltip.LeaveTooltip() }

// BackgroundClick force-hides the tooltip.
func (v *Visualizer) BackgroundClick() { v.tooltip.ForceHide() }

// DragStart begins dragging the node with the pointer at screen
// coordinates (sx, sy).
func (v *Visualizer) DragStart(id string, sx, sy float64) {
	n, ok := v.byID[id]
	if !ok {
		return
	}
	x, y := v.panzoom.Transform().Invert(sx, sy)
	v.drag.Start(n, x, y)
}

// DragMove follows the pointer during a drag.
func (v *Visualizer) DragMove(sx, sy float64) {
	x, y := v.panzoom.Transform().Invert(sx, sy)
	v.drag.Move(x, y)
}

// DragEnd releases the dragged node.
func (v *Visualizer) DragEnd() { v.drag.End() }

// Pan shifts the view by a screen-space delta.
func (v *Visualizer) Pan(dx, dy float64) { v.panzoom.PanBy(dx, dy) }

// Zoom scales the view about a screen point.
func (v *Visualizer) Zoom(factor, cx, cy float64) { v.panzoom.ZoomBy(factor, cx, cy) }

// Transform returns the current view transform.
func (v *Visualizer) Transform() interact.Transform { return v.panzoom.Transform() }

// ResetView restores the identity pan/zoom transform.
func (v *Visualizer) ResetView() { v.panzoom.Reset() }

// Accessors.

func (v *Visualizer) Nodes() []*model.Node          { return v.nodes }
func (v *Visualizer) Links() []*model.Link          { return v.links }
func (v *Visualizer) Node(id string) *model.Node    { return v.byID[id] }
func (v *Visualizer) Scene() *scene.Scene           { return v.scn }
func (v *Visualizer) Simulation() *layout.Simulation { return v.sim }
func (v *Visualizer) Config() layout.Config         { return v.cfg }
func (v *Visualizer) Viewport() (w, h float64)      { return v.width, v.height }
func (v *Visualizer) Dragging() *model.Node         { return v.drag.Dragging() }

func (v *Visualizer) reheat(alpha float64) {
	if v.sim.Alpha() < alpha {
		v.sim.SetAlpha(alpha)
	}
}
