package interact

import (
	"time"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// DefaultHideDelay is how long the tooltip stays up after the pointer
// leaves a node or the tooltip surface.
const DefaultHideDelay = 800 * time.Millisecond

// Tooltip is the single shared tooltip surface. Implementations decide
// how content reaches the screen; the controller only drives content and
// visibility.
type Tooltip interface {
	SetData(n *model.Node, circleRadiusUnit float64)
	Show()
	Hide()
}

// TooltipController drives the shared tooltip. Hiding is lazy: leaving a
// node (or the tooltip itself) schedules the hide, and re-entering either
// one cancels it, so the pointer can travel from the disc onto the
// tooltip without it flickering away. At most one hide is pending at a
// time; scheduling a new one replaces the old.
type TooltipController struct {
	tooltip    Tooltip
	scheduler  Scheduler
	hideDelay  time.Duration
	radiusUnit float64

	pendingHide Handle
}

// NewTooltipController wires a tooltip surface to a scheduler. The
// radius unit positions the tooltip relative to the hovered disc.
func NewTooltipController(t Tooltip, s Scheduler, circleRadiusUnit float64) *TooltipController {
	return &TooltipController{
		tooltip:    t,
		scheduler:  s,
		hideDelay:  DefaultHideDelay,
		radiusUnit: circleRadiusUnit,
	}
}

// SetHideDelay overrides the hide hysteresis.
func (c *TooltipController) SetHideDelay(d time.Duration) { c.hideDelay = d }

// SetRadiusUnit updates the disc radius unit after a viewport resize.
func (c *TooltipController) SetRadiusUnit(u float64) { c.radiusUnit = u }

// EnterNode shows the tooltip for n and cancels any pending hide.
func (c *TooltipController) EnterNode(n *model.Node) {
	c.cancelPendingHide()
	c.tooltip.SetData(n, c.radiusUnit)
	c.tooltip.Show()
}

// LeaveNode schedules the tooltip to hide after the hysteresis delay.
func (c *TooltipController) LeaveNode() { c.scheduleHide() }

// EnterTooltip cancels a pending hide while the pointer rests on the
// tooltip itself.
func (c *TooltipController) EnterTooltip() { c.cancelPendingHide() }

// LeaveTooltip schedules the hide, same as leaving a node.
func (c *TooltipController) LeaveTooltip() { c.scheduleHide() }

// ForceHide hides immediately. Background clicks and pan/zoom gestures
// use this.
func (c *TooltipController) ForceHide() {
	c.cancelPendingHide()
	c.tooltip.Hide()
}

func (c *TooltipController) scheduleHide() {
	c.cancelPendingHide()
	var h Handle
	h = c.scheduler.After(c.hideDelay, func() {
		if c.pendingHide == h {
			c.pendingHide = nil
		}
		c.tooltip.Hide()
	})
	c.pendingHide = h
}

func (c *TooltipController) cancelPendingHide() {
	if c.pendingHide != nil {
		c.pendingHide.Stop()
		c.pendingHide = nil
	}
}
