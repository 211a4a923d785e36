package svo

import "gonum.org/v1/gonum/spatial/r3"

// emittedNode is one serialized SVO record (spec.md §6): the packed
// child-mask/is_leaf/first-child-offset word, and the node's normal.
type emittedNode struct {
	packedBits int32
	normal     r3.Vec
}

// flatten assigns BFS visitation indices to every node and emits the
// packed record for each, back-patching each parent's first-child offset
// once that child's index is known (spec.md §4.3 step 5).
func flatten(root *node) []emittedNode {
	order := []*node{root}
	index := map[*node]int{root: 0}
	for i := 0; i < len(order); i++ {
		cur := order[i]
		for _, c := range cur.children {
			if c == nil {
				continue
			}
			index[c] = len(order)
			order = append(order, c)
		}
	}

	emitted := make([]emittedNode, len(order))
	for i, n := range order {
		mask := 0
		firstChildRel := 0
		haveFirst := false
		for oct, c := range n.children {
			if c == nil {
				continue
			}
			mask |= 1 << uint(oct)
			if !haveFirst {
				firstChildRel = index[c] - i
				haveFirst = true
			}
		}
		packed := mask
		if n.isLeaf {
			packed |= 1 << 8
		}
		packed |= firstChildRel << 9
		emitted[i] = emittedNode{packedBits: int32(packed), normal: n.normal}
	}
	return emitted
}
