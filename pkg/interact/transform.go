package interact

// Zoom scale bounds.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// Transform maps simulation coordinates to screen coordinates: scale
// first, then translate.
type Transform struct {
	X, Y  float64
	Scale float64
}

// IdentityTransform is the untransformed view.
func IdentityTransform() Transform { return Transform{Scale: 1} }

// Apply maps a simulation point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.X, y*t.Scale + t.Y
}

// Invert maps a screen point back to simulation space.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.Scale, (sy - t.Y) / t.Scale
}

// PanZoom accumulates pan and zoom gestures into a transform. Any
// gesture force-hides the tooltip, so stale hover state never floats
// over a moved viewport.
type PanZoom struct {
	transform Transform
	tooltip   *TooltipController // optional
}

func NewPanZoom(tc *TooltipController) *PanZoom {
	return &PanZoom{transform: IdentityTransform(), tooltip: tc}
}

// Transform returns the current view transform.
func (p *PanZoom) Transform() Transform { return p.transform }

// Reset restores the identity view.
func (p *PanZoom) Reset() { p.transform = IdentityTransform() }

// PanBy shifts the view by a screen-space delta.
func (p *PanZoom) PanBy(dx, dy float64) {
	p.hideTooltip()
	p.transform.X += dx
	p.transform.Y += dy
}

// ZoomBy scales the view by factor about the screen point (cx, cy),
// keeping that point fixed. The resulting scale is clamped to
// [MinScale, MaxScale].
func (p *PanZoom) ZoomBy(factor, cx, cy float64) {
	p.hideTooltip()
	next := clampScale(p.transform.Scale * factor)
	effective := next / p.transform.Scale
	p.transform.X = cx + (p.transform.X-cx)*effective
	p.transform.Y = cy + (p.transform.Y-cy)*effective
	p.transform.Scale = next
}

func (p *PanZoom) hideTooltip() {
	if p.tooltip != nil {
		p.tooltip.ForceHide()
	}
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
