package outline

import (
	"cmp"
	"slices"

	"github.com/iburimskiy/epicycles/internal/geom"
)

// OrderCircular returns the points rearranged into a single closed tour
// built by greedy nearest-unvisited-neighbor steps from points[0].
func OrderCircular(points []geom.Point) []geom.Point {
	order := CircularOrder(points)
	out := make([]geom.Point, len(order))
	for i, idx := range order {
		out[i] = points[idx]
	}
	return out
}

// CircularOrder returns the visiting order of the greedy tour as indices
// into points. The tour starts at index 0 and repeatedly advances to the
// closest point not yet visited; equal distances go to the lowest index, so
// the result is reproducible and duplicate points are harmless. The last
// point implicitly connects back to the first.
//
// Each step is a nearest-neighbor query against a KD-tree from which
// visited points are pruned, which yields the same tour as scanning every
// point per step.
func CircularOrder(points []geom.Point) []int {
	n := len(points)
	if n == 0 {
		return nil
	}
	order := make([]int, 1, n)
	if n == 1 {
		return order
	}

	tree := newKDTree(points)
	tree.remove(0)
	cur := 0
	for len(order) < n {
		cur = tree.nearest(points[cur])
		tree.remove(cur)
		order = append(order, cur)
	}
	return order
}

type kdNode struct {
	index  int // into kdTree.points
	axis   int
	left   int // node index, -1 if none
	right  int
	parent int
	// alive counts the unvisited points in the subtree rooted here.
	alive   int
	visited bool
}

// kdTree is a 2D KD-tree over point indices supporting removal, built by
// median splits alternating between X and Y.
type kdTree struct {
	points []geom.Point
	nodes  []kdNode
	nodeOf []int // point index -> node index
	root   int
}

func newKDTree(points []geom.Point) *kdTree {
	t := &kdTree{
		points: points,
		nodes:  make([]kdNode, 0, len(points)),
		nodeOf: make([]int, len(points)),
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(idx, 0, -1)
	return t
}

func coord(p geom.Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func (t *kdTree) build(idx []int, depth, parent int) int {
	if len(idx) == 0 {
		return -1
	}
	axis := depth % 2
	slices.SortFunc(idx, func(a, b int) int {
		if c := cmp.Compare(coord(t.points[a], axis), coord(t.points[b], axis)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	median := len(idx) / 2

	ni := len(t.nodes)
	t.nodes = append(t.nodes, kdNode{
		index:  idx[median],
		axis:   axis,
		parent: parent,
		alive:  len(idx),
	})
	t.nodeOf[idx[median]] = ni

	left := t.build(idx[:median], depth+1, ni)
	right := t.build(idx[median+1:], depth+1, ni)
	t.nodes[ni].left = left
	t.nodes[ni].right = right
	return ni
}

func (t *kdTree) remove(i int) {
	ni := t.nodeOf[i]
	if t.nodes[ni].visited {
		return
	}
	t.nodes[ni].visited = true
	for ; ni != -1; ni = t.nodes[ni].parent {
		t.nodes[ni].alive--
	}
}

// nearest returns the index of the closest unvisited point to q, preferring
// the lowest index among equally distant ones. It returns -1 if every point
// has been visited.
func (t *kdTree) nearest(q geom.Point) int {
	best, bestD2 := -1, 0.0
	var search func(ni int)
	search = func(ni int) {
		if ni == -1 || t.nodes[ni].alive == 0 {
			return
		}
		n := &t.nodes[ni]
		p := t.points[n.index]
		if !n.visited {
			d2 := q.DistanceSquared(p)
			if best == -1 || d2 < bestD2 || (d2 == bestD2 && n.index < best) {
				best, bestD2 = n.index, d2
			}
		}

		delta := coord(q, n.axis) - coord(p, n.axis)
		near, far := n.left, n.right
		if delta > 0 {
			near, far = far, near
		}
		search(near)
		// Equality still searches the far side: it may hold a tie with a
		// lower index.
		if best == -1 || delta*delta <= bestD2 {
			search(far)
		}
	}
	search(t.root)
	return best
}
