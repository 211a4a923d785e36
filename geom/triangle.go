package geom

import "gonum.org/v1/gonum/spatial/r3"

// Triangle is a single mesh triangle in single-precision-sourced but
// double-precision-computed form; the builders work in float64 and only
// the blob encoders round down to float32 as they write through package
// wordbuf.
type Triangle struct {
	P0, P1, P2 r3.Vec
}

// Bounds returns the axis-aligned bounding box of the triangle's three
// vertices.
func (t Triangle) Bounds() Bounds {
	return Empty().UnionPoint(t.P0).UnionPoint(t.P1).UnionPoint(t.P2)
}

// Centroid returns the midpoint of the triangle's bounding box, matching
// spec.md's "centroid (midpoint of bbox)" definition rather than the
// vertex average.
func (t Triangle) Centroid() r3.Vec {
	return t.Bounds().Center()
}

// Normal returns the geometric face normal: normalize((P2-P0) x (P1-P0)).
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t.P2, t.P0)
	e2 := r3.Sub(t.P1, t.P0)
	return r3.Unit(r3.Cross(e1, e2))
}

// FromFloat32Slice decodes a flat [p0x,p0y,p0z,p1x,p1y,p1z,p2x,p2y,p2z] x T
// buffer into a Triangle slice, matching the wire layout of spec.md §6.
func FromFloat32Slice(data []float32) []Triangle {
	n := len(data) / 9
	tris := make([]Triangle, n)
	for i := 0; i < n; i++ {
		b := i * 9
		tris[i] = Triangle{
			P0: r3.Vec{X: float64(data[b+0]), Y: float64(data[b+1]), Z: float64(data[b+2])},
			P1: r3.Vec{X: float64(data[b+3]), Y: float64(data[b+4]), Z: float64(data[b+5])},
			P2: r3.Vec{X: float64(data[b+6]), Y: float64(data[b+7]), Z: float64(data[b+8])},
		}
	}
	return tris
}
