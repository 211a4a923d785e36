// Package voxelgrid builds a dense voxel grid over a triangle mesh,
// rasterizing each triangle via conservative SAT intersection and
// accumulating an averaged surface normal per occupied voxel
// (spec.md §4.2).
package voxelgrid

import (
	"math"

	"github.com/gridforge/meshaccel/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Voxel is a single grid cell: a triangle-contribution count and the sum
// (not average) of the geometric normals of triangles that intersected
// it, per spec.md §3.
type Voxel struct {
	Count     int
	NormalSum r3.Vec
}

// Grid is a dense voxel grid (spec.md §3, VoxelGrid).
type Grid struct {
	Origin     r3.Vec
	NX, NY, NZ int
	VoxelSize  float64
	Voxels     []Voxel
}

func (g *Grid) index(x, y, z int) int {
	return z*g.NX*g.NY + y*g.NX + x
}

// At returns the voxel at grid coordinate (x, y, z).
func (g *Grid) At(x, y, z int) *Voxel {
	return &g.Voxels[g.index(x, y, z)]
}

// center returns the world-space center of voxel (x, y, z).
func (g *Grid) center(x, y, z int) r3.Vec {
	return r3.Vec{
		X: g.Origin.X + (float64(x)+0.5)*g.VoxelSize,
		Y: g.Origin.Y + (float64(y)+0.5)*g.VoxelSize,
		Z: g.Origin.Z + (float64(z)+0.5)*g.VoxelSize,
	}
}

// sizeGrid implements spec.md §4.2 "Sizing": fit voxelSize to the mesh's
// longest extent at the requested resolution, then expand by half a
// voxel on every side and re-derive integer dimensions and voxelSize so
// every triangle vertex falls strictly inside the grid.
func sizeGrid(bounds geom.Bounds, resolution int) (origin r3.Vec, nx, ny, nz int, voxelSize float64) {
	diag := bounds.Diagonal()
	maxExtent := math.Max(diag.X, math.Max(diag.Y, diag.Z))
	voxelSize = maxExtent / float64(resolution-1)

	half := voxelSize / 2
	min := r3.Vec{X: bounds.Min.X - half, Y: bounds.Min.Y - half, Z: bounds.Min.Z - half}
	max := r3.Vec{X: bounds.Max.X + half, Y: bounds.Max.Y + half, Z: bounds.Max.Z + half}
	expanded := geom.Bounds{Min: min, Max: max}

	expDiag := expanded.Diagonal()
	maxExtent = math.Max(expDiag.X, math.Max(expDiag.Y, expDiag.Z))
	voxelSize = maxExtent / float64(resolution)

	nx = int(math.Ceil(expDiag.X / voxelSize))
	ny = int(math.Ceil(expDiag.Y / voxelSize))
	nz = int(math.Ceil(expDiag.Z / voxelSize))
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}

	origin = min
	return origin, nx, ny, nz, voxelSize
}

// newGrid allocates an empty grid sized for resolution over bounds.
func newGrid(bounds geom.Bounds, resolution int) (*Grid, error) {
	if resolution < 2 {
		return nil, errors.Errorf("voxelgrid: resolution must be >= 2, got %d", resolution)
	}
	origin, nx, ny, nz, voxelSize := sizeGrid(bounds, resolution)
	return &Grid{
		Origin:    origin,
		NX:        nx,
		NY:        ny,
		NZ:        nz,
		VoxelSize: voxelSize,
		Voxels:    make([]Voxel, nx*ny*nz),
	}, nil
}
