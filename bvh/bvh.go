// Package bvh builds a surface-area-heuristic bounding volume hierarchy
// over a triangle mesh and flattens it to the linear node layout
// consumers traverse without pointers (spec.md §4.1).
package bvh

import (
	"github.com/gridforge/meshaccel/geom"
	"github.com/gridforge/meshaccel/wordbuf"
	"github.com/pkg/errors"
)

// Blob is the decoded result of Build: the flattened node array and the
// triangle array reordered into leaf-contiguous groups. Encode produces
// the wire-format word buffer from spec.md §6.
type Blob struct {
	Nodes     []linearNode
	Triangles []geom.Triangle
}

// Build constructs a SAH-BVH over triangles and returns the flattened blob
// (spec.md §4.1). Every span with fewer than leafThreshold primitives
// becomes a leaf; a larger span also becomes a leaf when it is degenerate
// or no split beats the leaf cost, so a leaf can hold more than
// leafThreshold primitives. triangles must be non-empty and leafThreshold >= 1;
// both are precondition violations per spec.md §7, reported as errors
// here rather than left to panic so library callers can handle a bad
// host-supplied mesh without a runtime crash.
func Build(triangles []geom.Triangle, leafThreshold int) (*Blob, error) {
	if len(triangles) == 0 {
		return nil, errors.New("bvh: triangles must be non-empty")
	}
	if leafThreshold < 1 {
		return nil, errors.Errorf("bvh: leafThreshold must be >= 1, got %d", leafThreshold)
	}

	bd := &builder{
		infos:         buildPrimitiveInfo(triangles),
		orderedPrims:  make([]int, 0, len(triangles)),
		leafThreshold: leafThreshold,
	}
	root := bd.build(0, len(bd.infos))
	nodes := flatten(root)

	ordered := make([]geom.Triangle, len(bd.orderedPrims))
	for i, origIdx := range bd.orderedPrims {
		ordered[i] = triangles[origIdx]
	}

	return &Blob{Nodes: nodes, Triangles: ordered}, nil
}

// Encode serializes the blob to the word layout of spec.md §6:
// totalNodes, primCount, the node-pair array, the per-node bounds array,
// then the reordered triangle array.
func (b *Blob) Encode() []uint32 {
	totalNodes := len(b.Nodes)
	primCount := len(b.Triangles)

	buf := wordbuf.New(2 + 2*totalNodes + 6*totalNodes + 9*primCount)
	buf.PutInt(int32(totalNodes))
	buf.PutInt(int32(primCount))

	for _, n := range b.Nodes {
		buf.PutInt(n.firstInt)
		buf.PutInt(n.nPrimsAxis)
	}

	for _, n := range b.Nodes {
		buf.PutFloat32(float32(n.bounds.Min.X))
		buf.PutFloat32(float32(n.bounds.Min.Y))
		buf.PutFloat32(float32(n.bounds.Min.Z))
		buf.PutFloat32(float32(n.bounds.Max.X))
		buf.PutFloat32(float32(n.bounds.Max.Y))
		buf.PutFloat32(float32(n.bounds.Max.Z))
	}

	for _, t := range b.Triangles {
		buf.PutFloat32(float32(t.P0.X))
		buf.PutFloat32(float32(t.P0.Y))
		buf.PutFloat32(float32(t.P0.Z))
		buf.PutFloat32(float32(t.P1.X))
		buf.PutFloat32(float32(t.P1.Y))
		buf.PutFloat32(float32(t.P1.Z))
		buf.PutFloat32(float32(t.P2.X))
		buf.PutFloat32(float32(t.P2.Y))
		buf.PutFloat32(float32(t.P2.Z))
	}

	return buf.Words()
}
