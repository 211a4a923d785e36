// Package meshaccel builds three spatial-acceleration structures over a
// triangle mesh: a SAH bounding-volume hierarchy, a dense voxel grid, and
// a sparse voxel octree. Every entry point accepts a flat triangle buffer
// with layout [p0x,p0y,p0z,p1x,p1y,p1z,p2x,p2y,p2z] x T and returns a
// single []uint32 blob (spec.md §6) for a GPU ray tracer or voxel
// renderer to consume directly.
package meshaccel

import (
	"github.com/gridforge/meshaccel/bvh"
	"github.com/gridforge/meshaccel/geom"
	"github.com/gridforge/meshaccel/svo"
	"github.com/gridforge/meshaccel/voxelgrid"
)

// BuildBVH constructs a SAH-BVH over triangles (given as a flat
// [p0,p1,p2]xT float32 buffer) and returns its encoded blob.
func BuildBVH(triangles []float32, leafThreshold int) ([]uint32, error) {
	tris := geom.FromFloat32Slice(triangles)
	blob, err := bvh.Build(tris, leafThreshold)
	if err != nil {
		return nil, err
	}
	return blob.Encode(), nil
}

// BuildVoxelGrid rasterizes triangles into a dense voxel grid sized for
// resolution voxels along the mesh's longest extent and returns its
// encoded blob.
func BuildVoxelGrid(triangles []float32, resolution int) ([]uint32, error) {
	tris := geom.FromFloat32Slice(triangles)
	grid, err := voxelgrid.Build(tris, resolution)
	if err != nil {
		return nil, err
	}
	return grid.Encode(), nil
}

// BuildSVO rasterizes triangles into a sparse voxel octree of the given
// maximum depth, simplifies normal-coherent sibling leaves, and returns
// its encoded blob.
func BuildSVO(triangles []float32, depth int) ([]uint32, error) {
	tris := geom.FromFloat32Slice(triangles)
	octree, err := svo.Build(tris, depth)
	if err != nil {
		return nil, err
	}
	return octree.Encode(), nil
}
