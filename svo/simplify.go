package svo

import "gonum.org/v1/gonum/spatial/r3"

// simplifyThreshold is SIMPLIFY_THRESHOLD from spec.md §4.3 step 4.
const simplifyThreshold = 5

// simplify walks the tree post-order, collapsing a node into a leaf when
// it is either full (all eight octants populated) or at least
// simplifyThreshold levels below the root, every one of its existing
// children is itself a leaf, and those children's normals pairwise agree
// with the first child's normal to cosine >= 0.9. The depth-based
// candidacy caps octree detail beyond a fixed depth from the root even
// when a branch never fills out (spec.md §9 Design Notes).
func (bd *builder) simplify() {
	bd.simplifyNode(bd.root, bd.root.depth)
}

func (bd *builder) simplifyNode(n *node, rootDepth int) {
	if n == nil || n.isLeaf {
		return
	}

	childCount := 0
	for _, c := range n.children {
		if c != nil {
			bd.simplifyNode(c, rootDepth)
			childCount++
		}
	}
	if childCount == 0 {
		return
	}

	full := childCount == 8
	deepEnough := rootDepth-n.depth >= simplifyThreshold
	if !full && !deepEnough {
		return
	}

	var first r3.Vec
	haveFirst := false
	agree := true
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if !c.isLeaf {
			return
		}
		if !haveFirst {
			first = c.normal
			haveFirst = true
			continue
		}
		if r3.Dot(first, c.normal) < 0.9 {
			agree = false
		}
	}
	if !agree {
		return
	}

	bd.nodeCount -= childCount
	n.children = [8]*node{}
	n.isLeaf = true
	n.normal = first
}
