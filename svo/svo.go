// Package svo builds a sparse voxel octree over a triangle mesh,
// rasterizing to a dense leaf-resolution grid and then inserting occupied
// voxel centers into an octree that collapses normal-coherent sibling
// leaves (spec.md §4.3).
package svo

import (
	"github.com/gridforge/meshaccel/geom"
	"github.com/gridforge/meshaccel/wordbuf"
	"github.com/pkg/errors"
)

// maxDepth is the precondition ceiling from spec.md §7: beyond this the
// leaf grid's 2^depth side blows past any sane address space.
const maxDepth = 30

// Octree is the decoded result of Build: the enlarged bounds the root
// covers, the leaf-grid side, and the BFS-ordered emitted node records.
type Octree struct {
	Bounds       geom.Bounds
	LeafGridSide int
	Nodes        []emittedNode
}

// Build rasterizes triangles into a dense grid at 2^depth leaf resolution,
// inserts every occupied voxel's center (carrying its averaged normal)
// into an octree, simplifies normal-coherent sibling leaves, and returns
// the BFS-serializable result (spec.md §4.3).
func Build(triangles []geom.Triangle, depth int) (*Octree, error) {
	if len(triangles) == 0 {
		return nil, errors.New("svo: triangles must be non-empty")
	}
	if depth < 1 || depth > maxDepth {
		return nil, errors.Errorf("svo: depth must be in [1, %d], got %d", maxDepth, depth)
	}

	bounds := geom.Empty()
	for _, t := range triangles {
		bounds = bounds.Union(t.Bounds())
	}

	grid, enlarged := rasterizeLeafGrid(triangles, bounds, depth)
	bd := newBuilder(enlarged, depth)

	for z := 0; z < grid.side; z++ {
		for y := 0; y < grid.side; y++ {
			for x := 0; x < grid.side; x++ {
				cell := grid.at(x, y, z)
				if cell.count == 0 {
					continue
				}
				inv := 1.0 / float64(cell.count)
				avg := cell.normalSum
				avg.X *= inv
				avg.Y *= inv
				avg.Z *= inv
				bd.insert(grid.center(x, y, z), avg)
			}
		}
	}

	bd.simplify()
	nodes := flatten(bd.root)

	return &Octree{Bounds: enlarged, LeafGridSide: grid.side, Nodes: nodes}, nil
}

// Encode serializes the octree to the word layout of spec.md §6: enlarged
// bounds (6 floats), leaf-grid side (int), emitted node count (int), then
// one (packedBits:int, normal.x, normal.y, normal.z) record per node in
// BFS order.
func (o *Octree) Encode() []uint32 {
	buf := wordbuf.New(8 + 4*len(o.Nodes))

	buf.PutFloat32(float32(o.Bounds.Min.X))
	buf.PutFloat32(float32(o.Bounds.Min.Y))
	buf.PutFloat32(float32(o.Bounds.Min.Z))
	buf.PutFloat32(float32(o.Bounds.Max.X))
	buf.PutFloat32(float32(o.Bounds.Max.Y))
	buf.PutFloat32(float32(o.Bounds.Max.Z))

	buf.PutInt(int32(o.LeafGridSide))
	buf.PutInt(int32(len(o.Nodes)))

	for _, n := range o.Nodes {
		buf.PutInt(n.packedBits)
		buf.PutFloat32(float32(n.normal.X))
		buf.PutFloat32(float32(n.normal.Y))
		buf.PutFloat32(float32(n.normal.Z))
	}

	return buf.Words()
}
