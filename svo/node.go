package svo

import (
	"github.com/gridforge/meshaccel/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// node is the transient SVO node (spec.md §3, SVO node). depth counts down
// from the tree's configured maximum to 0 at a leaf; children are indexed
// by a 3-bit octant mask where bit i is set iff the inserted point's
// axis-i coordinate exceeds the node's midpoint.
type node struct {
	bounds   geom.Bounds
	depth    int
	children [8]*node
	normal   r3.Vec
	isLeaf   bool
}

// octantFor computes the 3-bit child index for point p within n's bounds.
func octantFor(p r3.Vec, bounds geom.Bounds) int {
	mid := bounds.Center()
	oct := 0
	if p.X > mid.X {
		oct |= 1
	}
	if p.Y > mid.Y {
		oct |= 2
	}
	if p.Z > mid.Z {
		oct |= 4
	}
	return oct
}

// childBounds returns the bounds of octant oct within a node's bounds.
func childBounds(bounds geom.Bounds, oct int) geom.Bounds {
	mid := bounds.Center()
	var min, max r3.Vec
	if oct&1 != 0 {
		min.X, max.X = mid.X, bounds.Max.X
	} else {
		min.X, max.X = bounds.Min.X, mid.X
	}
	if oct&2 != 0 {
		min.Y, max.Y = mid.Y, bounds.Max.Y
	} else {
		min.Y, max.Y = bounds.Min.Y, mid.Y
	}
	if oct&4 != 0 {
		min.Z, max.Z = mid.Z, bounds.Max.Z
	} else {
		min.Z, max.Z = bounds.Min.Z, mid.Z
	}
	return geom.Bounds{Min: min, Max: max}
}

// builder threads the node counter from spec.md §4.3 step 3 through
// insertion and the collapses of simplification.
type builder struct {
	root      *node
	nodeCount int
}

func newBuilder(bounds geom.Bounds, depth int) *builder {
	return &builder{
		root:      &node{bounds: bounds, depth: depth},
		nodeCount: 1,
	}
}

// insert descends from the root, creating child nodes on demand, and
// stores normal on the depth-0 node the point falls into.
func (bd *builder) insert(p r3.Vec, normal r3.Vec) {
	n := bd.root
	for n.depth > 0 {
		oct := octantFor(p, n.bounds)
		if n.children[oct] == nil {
			n.children[oct] = &node{bounds: childBounds(n.bounds, oct), depth: n.depth - 1}
			bd.nodeCount++
		}
		n = n.children[oct]
	}
	n.isLeaf = true
	n.normal = normal
}
