// Package geom provides the vector, bounds, and triangle primitives shared
// by the bvh, voxelgrid, and svo builders. Vector arithmetic is backed by
// gonum's spatial/r3 package rather than a hand-rolled Vec type.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned bounding box. Min and Max are only meaningful
// once the box has been unioned with at least one point or box; a zero
// Bounds is not a valid empty box (use Empty()).
type Bounds struct {
	Min, Max r3.Vec
}

// Empty returns the identity element for Union: unioning it with any box
// or point returns that box or point unchanged. This is what lets the SAH
// bucket sweep in package bvh carry forward the last-established bucket
// bounds across an empty bucket without special-casing it.
func Empty() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: r3.Vec{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y), Z: math.Min(b.Min.Z, o.Min.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y), Z: math.Max(b.Max.Z, o.Max.Z)},
	}
}

// UnionPoint returns the smallest box containing both b and p.
func (b Bounds) UnionPoint(p r3.Vec) Bounds {
	return Bounds{
		Min: r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Diagonal returns Max - Min.
func (b Bounds) Diagonal() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// SurfaceArea computes 2(dx*dy + dy*dz + dz*dx). A box with zero extent on
// at least two axes has zero area, which the SAH search relies on to
// recognize degenerate spans; a box that is flat on only one axis has a
// positive area. The result for an inverted box such as Empty() is not a
// meaningful area.
func (b Bounds) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaximumExtent returns the axis (0=X, 1=Y, 2=Z) along which the box is
// widest.
func (b Bounds) MaximumExtent() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Offset returns the position of p relative to the box, normalized to
// [0, 1] per axis. Callers must guarantee non-zero extent on every axis
// they query; the SAH builder only calls this after checking the
// coplanar-centroid degenerate case.
func (b Bounds) Offset(p r3.Vec) r3.Vec {
	o := r3.Sub(p, b.Min)
	d := b.Diagonal()
	if d.X > 0 {
		o.X /= d.X
	}
	if d.Y > 0 {
		o.Y /= d.Y
	}
	if d.Z > 0 {
		o.Z /= d.Z
	}
	return o
}

// Center returns the midpoint of the box.
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Axis returns the component of v along the given axis (0=X, 1=Y, 2=Z).
func Axis(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic("geom: invalid axis")
	}
}
