package voxelgrid

import (
	"testing"

	"github.com/gridforge/meshaccel/geom"
	"github.com/gridforge/meshaccel/wordbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func tri(p0, p1, p2 r3.Vec) geom.Triangle {
	return geom.Triangle{P0: p0, P1: p1, P2: p2}
}

// tetrahedron returns the four faces of a unit tetrahedron at the origin.
func tetrahedron() []geom.Triangle {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: 1}
	return []geom.Triangle{
		tri(a, c, b),
		tri(a, b, d),
		tri(a, d, c),
		tri(b, c, d),
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := Build(nil, 4)
	require.Error(t, err)
}

func TestBuildRejectsBadResolution(t *testing.T) {
	_, err := Build(tetrahedron(), 1)
	require.Error(t, err)
}

func TestTetrahedronHasFilledVoxelPerFace(t *testing.T) {
	tris := tetrahedron()
	g, err := Build(tris, 4)
	require.NoError(t, err)

	half := g.VoxelSize / 2
	for i, tr := range tris {
		faceFilled := false
		for z := 0; z < g.NZ && !faceFilled; z++ {
			for y := 0; y < g.NY && !faceFilled; y++ {
				for x := 0; x < g.NX && !faceFilled; x++ {
					if g.At(x, y, z).Count == 0 {
						continue
					}
					if geom.TriangleIntersectsBox(tr, g.center(x, y, z), r3.Vec{X: half, Y: half, Z: half}) {
						faceFilled = true
					}
				}
			}
		}
		assert.True(t, faceFilled, "face %d has no filled voxel", i)
	}
}

func TestUnfilledVoxelDoesNotActuallyIntersectAnyTriangle(t *testing.T) {
	tris := tetrahedron()
	g, err := Build(tris, 4)
	require.NoError(t, err)

	half := g.VoxelSize / 2
	for z := 0; z < g.NZ; z++ {
		for y := 0; y < g.NY; y++ {
			for x := 0; x < g.NX; x++ {
				v := g.At(x, y, z)
				if v.Count > 0 {
					continue
				}
				center := g.center(x, y, z)
				for _, tr := range tris {
					require.False(t, geom.TriangleIntersectsBox(tr, center, r3.Vec{X: half, Y: half, Z: half}),
						"voxel (%d,%d,%d) marked unfilled but SAT says it intersects", x, y, z)
				}
			}
		}
	}
}

func TestFilledVoxelNormalIsArithmeticMean(t *testing.T) {
	// Two coplanar triangles covering the same voxel, same normal: the
	// averaged normal must equal that shared normal.
	a := tri(r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0})
	b := tri(r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 1, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0})
	g, err := Build([]geom.Triangle{a, b}, 4)
	require.NoError(t, err)

	wantNormal := a.Normal()
	found := false
	for _, v := range g.Voxels {
		if v.Count == 0 {
			continue
		}
		found = true
		avg := r3.Scale(1.0/float64(v.Count), v.NormalSum)
		assert.InDelta(t, wantNormal.Z, avg.Z, 1e-6)
	}
	assert.True(t, found)
}

func TestEncodeLayout(t *testing.T) {
	g, err := Build(tetrahedron(), 4)
	require.NoError(t, err)
	words := g.Encode()

	assert.InDelta(t, g.Origin.X, float64(wordbuf.ReadFloat32(words, 0)), 1e-5)
	assert.Equal(t, int32(g.NX), wordbuf.ReadInt(words, 3))
	assert.Equal(t, int32(g.NY), wordbuf.ReadInt(words, 4))
	assert.Equal(t, int32(g.NZ), wordbuf.ReadInt(words, 5))
	assert.Equal(t, float32(g.VoxelSize), wordbuf.ReadFloat32(words, 6))

	require.Len(t, words, 7+4*len(g.Voxels))

	// Spot-check a filled voxel's filled flag.
	for idx, v := range g.Voxels {
		off := 7 + 4*idx
		filled := wordbuf.ReadInt(words, off+3)
		if v.Count > 0 {
			assert.Equal(t, int32(1), filled)
		} else {
			assert.Equal(t, int32(0), filled)
		}
	}
}

func TestGridExtentCoversExpandedBounds(t *testing.T) {
	tris := tetrahedron()
	g, err := Build(tris, 4)
	require.NoError(t, err)
	assert.Greater(t, g.NX, 0)
	assert.Greater(t, g.NY, 0)
	assert.Greater(t, g.NZ, 0)
	assert.Greater(t, g.VoxelSize, 0.0)

	// The tetrahedron spans [0,1] on every axis; at resolution 4 the first
	// voxel size is 1/3, so the expanded bounds are [-1/6, 7/6].
	const lo, hi = -1.0 / 6, 7.0 / 6
	assert.InDelta(t, lo, g.Origin.X, 1e-9)
	assert.InDelta(t, lo, g.Origin.Y, 1e-9)
	assert.InDelta(t, lo, g.Origin.Z, 1e-9)
	assert.GreaterOrEqual(t, g.Origin.X+float64(g.NX)*g.VoxelSize, hi-1e-9)
	assert.GreaterOrEqual(t, g.Origin.Y+float64(g.NY)*g.VoxelSize, hi-1e-9)
	assert.GreaterOrEqual(t, g.Origin.Z+float64(g.NZ)*g.VoxelSize, hi-1e-9)
}
