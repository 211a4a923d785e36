package voxelgrid

import (
	"math"

	"github.com/gridforge/meshaccel/geom"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var errEmptyInput = errors.New("voxelgrid: triangles must be non-empty")

// rasterize tests triangle against every voxel whose index bounding box
// could plausibly overlap it (the triangle's own bounds clamped to the
// grid), accumulating its normal into any voxel the SAT test confirms
// intersection with (spec.md §4.2 steps 2-4).
func (g *Grid) rasterize(t geom.Triangle) {
	bounds := t.Bounds()
	normal := t.Normal()
	half := g.VoxelSize / 2

	minX, minY, minZ := g.clampIndex(bounds.Min)
	maxX, maxY, maxZ := g.clampIndex(bounds.Max)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				center := g.center(x, y, z)
				if !geom.TriangleIntersectsBox(t, center, r3.Vec{X: half, Y: half, Z: half}) {
					continue
				}
				v := g.At(x, y, z)
				v.Count++
				v.NormalSum = r3.Add(v.NormalSum, normal)
			}
		}
	}
}

// clampIndex converts a world point into the voxel index it falls in,
// clamped to the grid's valid range.
func (g *Grid) clampIndex(p r3.Vec) (x, y, z int) {
	x = clamp(int(math.Floor((p.X-g.Origin.X)/g.VoxelSize)), 0, g.NX-1)
	y = clamp(int(math.Floor((p.Y-g.Origin.Y)/g.VoxelSize)), 0, g.NY-1)
	z = clamp(int(math.Floor((p.Z-g.Origin.Z)/g.VoxelSize)), 0, g.NZ-1)
	return x, y, z
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Build rasterizes triangles into a dense grid sized for resolution
// voxels along the mesh's longest extent (spec.md §4.2).
func Build(triangles []geom.Triangle, resolution int) (*Grid, error) {
	if len(triangles) == 0 {
		return nil, errEmptyInput
	}
	bounds := geom.Empty()
	for _, t := range triangles {
		bounds = bounds.Union(t.Bounds())
	}
	g, err := newGrid(bounds, resolution)
	if err != nil {
		return nil, err
	}
	for _, t := range triangles {
		g.rasterize(t)
	}
	return g, nil
}
