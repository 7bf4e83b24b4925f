package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/vitae/pkg/model"
)

// quadTree is a Barnes-Hut approximation of the pairwise repulsion pass.
// Distant node clusters are folded into their center of mass, cutting the
// many-body force from O(n²) to O(n log n) for large CV trees.
type quadTree struct {
	root *quadNode
}

type quadNode struct {
	// bounds
	x, y, size float64

	// aggregate of all bodies below this cell
	mass   float64
	center r2.Vec

	body     *model.Node
	children [4]*quadNode
}

// buildQuadTree indexes the placed nodes into a square tree covering their
// bounding box.
func buildQuadTree(nodes []*model.Node) *quadTree {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Pos.X)
		minY = math.Min(minY, n.Pos.Y)
		maxX = math.Max(maxX, n.Pos.X)
		maxY = math.Max(maxY, n.Pos.Y)
	}
	size := math.Max(maxX-minX, maxY-minY)
	if size == 0 {
		size = 1
	}
	t := &quadTree{root: &quadNode{x: minX, y: minY, size: size}}
	for _, n := range nodes {
		t.root.insert(n, 0)
	}
	t.root.aggregate()
	return t
}

// maxQuadDepth bounds subdivision for coincident points.
const maxQuadDepth = 32

func (q *quadNode) insert(n *model.Node, depth int) {
	if q.body == nil && q.children[0] == nil {
		q.body = n
		return
	}
	if depth >= maxQuadDepth {
		// coincident bodies: fold into the aggregate only
		q.mass++
		return
	}
	if q.children[0] == nil {
		q.subdivide()
		old := q.body
		q.body = nil
		q.children[q.quadrant(old.Pos)].insert(old, depth+1)
	}
	q.children[q.quadrant(n.Pos)].insert(n, depth+1)
}

func (q *quadNode) subdivide() {
	half := q.size / 2
	q.children[0] = &quadNode{x: q.x, y: q.y, size: half}
	q.children[1] = &quadNode{x: q.x + half, y: q.y, size: half}
	q.children[2] = &quadNode{x: q.x, y: q.y + half, size: half}
	q.children[3] = &quadNode{x: q.x + half, y: q.y + half, size: half}
}

func (q *quadNode) quadrant(p r2.Vec) int {
	half := q.size / 2
	idx := 0
	if p.X >= q.x+half {
		idx |= 1
	}
	if p.Y >= q.y+half {
		idx |= 2
	}
	return idx
}

func (q *quadNode) aggregate() {
	if q.body != nil {
		q.mass++
		q.center = q.body.Pos
		return
	}
	var sum r2.Vec
	for _, c := range q.children {
		if c == nil {
			continue
		}
		c.aggregate()
		if c.mass == 0 {
			continue
		}
		q.mass += c.mass
		sum = r2.Add(sum, r2.Scale(c.mass, c.center))
	}
	if q.mass > 0 {
		q.center = r2.Scale(1/q.mass, sum)
	}
}

// accumulate walks the tree collecting the velocity delta for n, treating
// any cell whose size/distance ratio is below theta as a single charge.
func (t *quadTree) accumulate(n *model.Node, theta, k float64) r2.Vec {
	var out r2.Vec
	var walk func(q *quadNode)
	walk = func(q *quadNode) {
		if q == nil || q.mass == 0 {
			return
		}
		if q.body == n && q.mass == 1 {
			return
		}
		d := r2.Sub(n.Pos, q.center)
		dist := math.Hypot(d.X, d.Y)
		if q.body != nil || (dist > 0 && q.size/dist < theta) {
			out = r2.Add(out, r2.Scale(q.mass, pointCharge(n.Pos, q.center, k)))
			return
		}
		for _, c := range q.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}
