package geom

import "gonum.org/v1/gonum/spatial/r3"

// TriangleIntersectsBox is the Akenine-Möller separating-axis test between
// a triangle and an axis-aligned box given by its center and half-extents.
// It tests all 13 candidate separating axes: the 3 box face normals, the
// triangle's own normal, and the 9 cross products of box edges with
// triangle edges. This is the conservative test spec.md §4.2 relies on to
// rasterize triangles that span a voxel without depositing a vertex in it.
func TriangleIntersectsBox(t Triangle, boxCenter, halfExtents r3.Vec) bool {
	// Translate the triangle into the box's local (center-relative) frame.
	v0 := r3.Sub(t.P0, boxCenter)
	v1 := r3.Sub(t.P1, boxCenter)
	v2 := r3.Sub(t.P2, boxCenter)

	e0 := r3.Sub(v1, v0)
	e1 := r3.Sub(v2, v1)
	e2 := r3.Sub(v0, v2)

	// 3 box face normals: a standard AABB-overlap test on each axis.
	if !axisOverlap(v0, v1, v2, halfExtents) {
		return false
	}

	// Triangle normal.
	normal := r3.Cross(e0, e1)
	if !planeOverlapsBox(normal, v0, halfExtents) {
		return false
	}

	// 9 edge-cross-axis tests.
	edges := [3]r3.Vec{e0, e1, e2}
	boxAxes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	for _, e := range edges {
		for _, a := range boxAxes {
			axis := r3.Cross(e, a)
			if axis.X == 0 && axis.Y == 0 && axis.Z == 0 {
				continue
			}
			p0 := r3.Dot(axis, v0)
			p1 := r3.Dot(axis, v1)
			p2 := r3.Dot(axis, v2)
			minP, maxP := minMax3(p0, p1, p2)
			radius := halfExtents.X*absf(axis.X) + halfExtents.Y*absf(axis.Y) + halfExtents.Z*absf(axis.Z)
			if minP > radius || maxP < -radius {
				return false
			}
		}
	}

	return true
}

// axisOverlap checks the 3 trivial box-face-normal separating axes: the
// triangle's own AABB (relative to the box center) must overlap
// [-halfExtents, halfExtents] on every axis.
func axisOverlap(v0, v1, v2, halfExtents r3.Vec) bool {
	minX, maxX := minMax3(v0.X, v1.X, v2.X)
	if minX > halfExtents.X || maxX < -halfExtents.X {
		return false
	}
	minY, maxY := minMax3(v0.Y, v1.Y, v2.Y)
	if minY > halfExtents.Y || maxY < -halfExtents.Y {
		return false
	}
	minZ, maxZ := minMax3(v0.Z, v1.Z, v2.Z)
	if minZ > halfExtents.Z || maxZ < -halfExtents.Z {
		return false
	}
	return true
}

// planeOverlapsBox tests the triangle-normal separating axis: project the
// box's extreme corner along normal and compare against the triangle's
// plane distance.
func planeOverlapsBox(normal, v0, halfExtents r3.Vec) bool {
	d := r3.Dot(normal, v0)
	radius := halfExtents.X*absf(normal.X) + halfExtents.Y*absf(normal.Y) + halfExtents.Z*absf(normal.Z)
	return d <= radius && d >= -radius
}

func minMax3(a, b, c float64) (min, max float64) {
	min, max = a, a
	for _, v := range [2]float64{b, c} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
