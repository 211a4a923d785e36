package bvh

import "github.com/gridforge/meshaccel/geom"

// linearNode mirrors spec.md §3's LinearBVHNode: 2 integers + 6 floats.
// For a leaf, firstInt is the first-primitive offset. For an interior
// node, firstInt is the index of the second child (the first child is
// implicitly at selfIndex+1). nPrimsAxis packs (nPrims<<2)|splitAxis.
type linearNode struct {
	bounds     geom.Bounds
	firstInt   int32
	nPrimsAxis int32
}

// flatten performs the depth-first emission of spec.md §4.1: each node is
// appended at the next free index; for an interior node, the first child
// is emitted immediately after (so it lands at self+1), then the second
// child, whose returned index is back-patched into the parent's record.
func flatten(root *buildNode) []linearNode {
	nodes := make([]linearNode, 0)
	flattenRec(root, &nodes)
	return nodes
}

func flattenRec(node *buildNode, nodes *[]linearNode) int {
	self := len(*nodes)
	*nodes = append(*nodes, linearNode{bounds: node.bounds})

	if node.nPrimitives > 0 {
		(*nodes)[self].firstInt = int32(node.firstPrimOffset)
		(*nodes)[self].nPrimsAxis = int32(node.nPrimitives<<2) | 0
		return self
	}

	flattenRec(node.left, nodes)
	secondChild := flattenRec(node.right, nodes)

	// Re-index rather than hold a pointer across the recursive calls:
	// appends above may have reallocated the backing array.
	(*nodes)[self].firstInt = int32(secondChild)
	(*nodes)[self].nPrimsAxis = int32(node.splitAxis & 0x3)
	return self
}
