package svo

import (
	"math"

	"github.com/gridforge/meshaccel/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// leafCell is a single cell of the octree's dense leaf-resolution
// rasterization grid: the input to insertion, not the final blob.
type leafCell struct {
	count     int
	normalSum r3.Vec
}

// leafGrid is the dense grid rasterized at the octree's leaf resolution
// (spec.md §4.3 step 1), sized the way §4.2 sizes a voxel grid except the
// initial voxel size is derived directly from 2^depth rather than
// (size - 1).
type leafGrid struct {
	origin    r3.Vec
	side      int // leafRes along every axis
	voxelSize float64
	cells     []leafCell
}

func (g *leafGrid) index(x, y, z int) int {
	return z*g.side*g.side + y*g.side + x
}

func (g *leafGrid) at(x, y, z int) *leafCell {
	return &g.cells[g.index(x, y, z)]
}

func (g *leafGrid) center(x, y, z int) r3.Vec {
	return r3.Vec{
		X: g.origin.X + (float64(x)+0.5)*g.voxelSize,
		Y: g.origin.Y + (float64(y)+0.5)*g.voxelSize,
		Z: g.origin.Z + (float64(z)+0.5)*g.voxelSize,
	}
}

// sizeLeafGrid mirrors voxelgrid's sizing algorithm with the octree's
// voxel-side formula from spec.md §4.3: `maxExtent / 2^depth` instead of
// `maxExtent / (size - 1)`.
func sizeLeafGrid(bounds geom.Bounds, depth int) (origin r3.Vec, side int, voxelSize float64, enlarged geom.Bounds) {
	leafRes := 1 << uint(depth)

	diag := bounds.Diagonal()
	maxExtent := math.Max(diag.X, math.Max(diag.Y, diag.Z))
	voxelSize = maxExtent / float64(leafRes)

	half := voxelSize / 2
	min := r3.Vec{X: bounds.Min.X - half, Y: bounds.Min.Y - half, Z: bounds.Min.Z - half}
	max := r3.Vec{X: bounds.Max.X + half, Y: bounds.Max.Y + half, Z: bounds.Max.Z + half}
	expanded := geom.Bounds{Min: min, Max: max}

	expDiag := expanded.Diagonal()
	maxExtent = math.Max(expDiag.X, math.Max(expDiag.Y, expDiag.Z))
	voxelSize = maxExtent / float64(leafRes)
	side = leafRes

	enlargedMax := r3.Vec{
		X: min.X + float64(side)*voxelSize,
		Y: min.Y + float64(side)*voxelSize,
		Z: min.Z + float64(side)*voxelSize,
	}
	enlarged = geom.Bounds{Min: min, Max: enlargedMax}
	return min, side, voxelSize, enlarged
}

// rasterizeLeafGrid fills a leafGrid with per-cell triangle-normal
// contributions using the same conservative SAT test voxelgrid uses.
func rasterizeLeafGrid(triangles []geom.Triangle, bounds geom.Bounds, depth int) (*leafGrid, geom.Bounds) {
	origin, side, voxelSize, enlarged := sizeLeafGrid(bounds, depth)
	g := &leafGrid{origin: origin, side: side, voxelSize: voxelSize, cells: make([]leafCell, side*side*side)}

	half := voxelSize / 2
	for _, t := range triangles {
		tb := t.Bounds()
		normal := t.Normal()
		minX, minY, minZ := g.clampIndex(tb.Min)
		maxX, maxY, maxZ := g.clampIndex(tb.Max)
		for z := minZ; z <= maxZ; z++ {
			for y := minY; y <= maxY; y++ {
				for x := minX; x <= maxX; x++ {
					center := g.center(x, y, z)
					if !geom.TriangleIntersectsBox(t, center, r3.Vec{X: half, Y: half, Z: half}) {
						continue
					}
					c := g.at(x, y, z)
					c.count++
					c.normalSum = r3.Add(c.normalSum, normal)
				}
			}
		}
	}
	return g, enlarged
}

func (g *leafGrid) clampIndex(p r3.Vec) (x, y, z int) {
	x = clampInt(int(math.Floor((p.X-g.origin.X)/g.voxelSize)), 0, g.side-1)
	y = clampInt(int(math.Floor((p.Y-g.origin.Y)/g.voxelSize)), 0, g.side-1)
	z = clampInt(int(math.Floor((p.Z-g.origin.Z)/g.voxelSize)), 0, g.side-1)
	return x, y, z
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
