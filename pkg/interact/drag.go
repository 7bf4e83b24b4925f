package interact

import (
	"github.com/vanderheijden86/vitae/pkg/layout"
	"github.com/vanderheijden86/vitae/pkg/model"
)

// DragController pins the dragged node to the pointer and keeps the
// simulation warm while the drag lasts, so the rest of the graph keeps
// adjusting around the pin.
type DragController struct {
	sim  *layout.Simulation
	node *model.Node
}

func NewDragController(sim *layout.Simulation) *DragController {
	return &DragController{sim: sim}
}

// Start begins dragging n with the pointer at (x, y) in simulation
// coordinates.
func (d *DragController) Start(n *model.Node, x, y float64) {
	d.node = n
	d.sim.SetAlphaTarget(layout.AlphaReheat)
	n.Pin(x, y)
}

// Move follows the pointer. A move without an active drag is ignored.
func (d *DragController) Move(x, y float64) {
	if d.node == nil {
		return
	}
	d.node.Pin(x, y)
}

// End releases the node and lets the simulation cool back down.
func (d *DragController) End() {
	if d.node == nil {
		return
	}
	d.sim.SetAlphaTarget(0)
	d.node.Unpin()
	d.node = nil
}

// Dragging returns the node under drag, or nil.
func (d *DragController) Dragging() *model.Node { return d.node }
