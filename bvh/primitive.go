package bvh

import (
	"github.com/gridforge/meshaccel/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// primitiveInfo is the per-triangle bookkeeping the builder sweeps over:
// its bounds, centroid, and its original index into the caller's triangle
// slice (spec.md §3, BVHPrimitive). The slice of primitiveInfo is
// permuted in place during construction; that permutation is the sole
// mechanism by which primitives are grouped per node.
type primitiveInfo struct {
	index    int
	bounds   geom.Bounds
	centroid r3.Vec
}

func buildPrimitiveInfo(triangles []geom.Triangle) []primitiveInfo {
	infos := make([]primitiveInfo, len(triangles))
	for i, tri := range triangles {
		infos[i] = primitiveInfo{
			index:    i,
			bounds:   tri.Bounds(),
			centroid: tri.Centroid(),
		}
	}
	return infos
}
