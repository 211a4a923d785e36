package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon guards the slab test and the Möller-Trumbore determinant against
// division by (near) zero, per spec.md §4.4.
const epsilon = 1e-4

// Ray is a parametric ray Origin + t*Dir.
type Ray struct {
	Origin, Dir r3.Vec
}

// InvApproximate returns the componentwise reciprocal of d, clamping any
// component whose magnitude is below epsilon to ±epsilon first so the
// slab test never produces an infinite or NaN intermediate.
func InvApproximate(d r3.Vec) r3.Vec {
	return r3.Vec{
		X: 1 / clampAway(d.X),
		Y: 1 / clampAway(d.Y),
		Z: 1 / clampAway(d.Z),
	}
}

func clampAway(v float64) float64 {
	if v >= 0 && v < epsilon {
		return epsilon
	}
	if v < 0 && v > -epsilon {
		return -epsilon
	}
	return v
}

// Hit reports whether the ray intersects b within [tmin, tmax], using the
// sign trick against a precomputed inverse direction: per axis, pick the
// min/max corner by the sign of invDir and narrow (tmin, tmax).
func (b Bounds) Hit(r Ray, invDir r3.Vec, tmin, tmax float64) bool {
	for axis := 0; axis < 3; axis++ {
		origin := Axis(r.Origin, axis)
		inv := Axis(invDir, axis)
		lo := (Axis(b.Min, axis) - origin) * inv
		hi := (Axis(b.Max, axis) - origin) * inv
		if inv < 0 {
			lo, hi = hi, lo
		}
		if lo > tmin {
			tmin = lo
		}
		if hi < tmax {
			tmax = hi
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

// IntersectRayTriangle implements Möller-Trumbore ray/triangle
// intersection. ok is false when the ray is parallel to the triangle's
// plane or the hit falls outside the triangle or outside [0, +inf).
func IntersectRayTriangle(r Ray, t Triangle) (ok bool, dist, u, v float64) {
	e1 := r3.Sub(t.P1, t.P0)
	e2 := r3.Sub(t.P2, t.P0)
	pvec := r3.Cross(r.Dir, e2)
	det := r3.Dot(e1, pvec)
	if math.Abs(det) < epsilon {
		return false, 0, 0, 0
	}
	invDet := 1 / det
	tvec := r3.Sub(r.Origin, t.P0)
	u = r3.Dot(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return false, 0, 0, 0
	}
	qvec := r3.Cross(tvec, e1)
	v = r3.Dot(r.Dir, qvec) * invDet
	if v < 0 || u+v > 1 {
		return false, 0, 0, 0
	}
	dist = r3.Dot(e2, qvec) * invDet
	if dist < 0 {
		return false, 0, 0, 0
	}
	return true, dist, u, v
}
