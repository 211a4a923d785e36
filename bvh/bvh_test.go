package bvh

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

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := Build(nil, 1)
	require.Error(t, err)
}

func TestBuildRejectsBadLeafThreshold(t *testing.T) {
	tris := []geom.Triangle{tri(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})}
	_, err := Build(tris, 0)
	require.Error(t, err)
}

func TestSingleTriangle(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0}),
	}
	blob, err := Build(tris, 1)
	require.NoError(t, err)
	require.Len(t, blob.Nodes, 1)
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, blob.Nodes[0].bounds.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 0}, blob.Nodes[0].bounds.Max)
	assert.Equal(t, tris, blob.Triangles)
}

func TestTwoFarTrianglesSplitOnLongestAxis(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0}),
		tri(r3.Vec{X: 10, Y: 0, Z: 0}, r3.Vec{X: 11, Y: 0, Z: 0}, r3.Vec{X: 10, Y: 1, Z: 0}),
	}
	blob, err := Build(tris, 1)
	require.NoError(t, err)
	require.Len(t, blob.Nodes, 3) // root + 2 leaves
	root := blob.Nodes[0]
	assert.InDelta(t, 0.0, root.bounds.Min.X, 1e-9)
	assert.InDelta(t, 11.0, root.bounds.Max.X, 1e-9)
	// interior node: nPrims portion (bits >> 2) must be zero
	assert.Equal(t, int32(0), root.nPrimsAxis>>2)
	// split axis (low two bits) is X, the longest centroid extent
	assert.Equal(t, int32(0), root.nPrimsAxis&0x3)
	// first child implicit at index 1, second child back-patched
	secondChild := root.firstInt
	assert.Equal(t, int32(2), secondChild)
}

func TestCoincidentTrianglesCollapseToSingleLeaf(t *testing.T) {
	one := tri(r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0})
	tris := []geom.Triangle{one, one, one}
	blob, err := Build(tris, 1)
	require.NoError(t, err)
	assert.Len(t, blob.Nodes, 1)
	assert.Equal(t, int32(3), blob.Nodes[0].nPrimsAxis>>2)
}

func TestCoverageEveryLeafRangeIsDisjointAndComplete(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0}, r3.Vec{X: 1}, r3.Vec{Y: 1}),
		tri(r3.Vec{X: 5}, r3.Vec{X: 6}, r3.Vec{X: 5, Y: 1}),
		tri(r3.Vec{X: 20}, r3.Vec{X: 21}, r3.Vec{X: 20, Y: 1}),
		tri(r3.Vec{X: 25}, r3.Vec{X: 26}, r3.Vec{X: 25, Y: 1}),
	}
	blob, err := Build(tris, 1)
	require.NoError(t, err)

	covered := make([]bool, len(blob.Triangles))
	for _, n := range blob.Nodes {
		nPrims := int(n.nPrimsAxis >> 2)
		if nPrims == 0 {
			continue
		}
		for i := int(n.firstInt); i < int(n.firstInt)+nPrims; i++ {
			require.False(t, covered[i], "primitive %d covered by more than one leaf", i)
			covered[i] = true
		}
	}
	for i, c := range covered {
		assert.True(t, c, "primitive %d not covered by any leaf", i)
	}
}

func TestInteriorBoundsEqualUnionOfChildren(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0}, r3.Vec{X: 1}, r3.Vec{Y: 1}),
		tri(r3.Vec{X: 10}, r3.Vec{X: 11}, r3.Vec{X: 10, Y: 1}),
	}
	blob, err := Build(tris, 1)
	require.NoError(t, err)

	var checkInterior func(idx int) geom.Bounds
	checkInterior = func(idx int) geom.Bounds {
		n := blob.Nodes[idx]
		nPrims := int(n.nPrimsAxis >> 2)
		if nPrims > 0 {
			return n.bounds
		}
		leftBounds := checkInterior(idx + 1)
		rightBounds := checkInterior(int(n.firstInt))
		union := leftBounds.Union(rightBounds)
		assert.InDelta(t, union.Min.X, n.bounds.Min.X, 1e-9)
		assert.InDelta(t, union.Max.X, n.bounds.Max.X, 1e-9)
		return n.bounds
	}
	checkInterior(0)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0, Y: 0, Z: 0}, r3.Vec{X: 1, Y: 0, Z: 0}, r3.Vec{X: 0, Y: 1, Z: 0}),
	}
	blob, err := Build(tris, 1)
	require.NoError(t, err)
	words := blob.Encode()

	totalNodes := wordbuf.ReadInt(words, 0)
	primCount := wordbuf.ReadInt(words, 1)
	assert.Equal(t, int32(1), totalNodes)
	assert.Equal(t, int32(1), primCount)

	boundsOffset := 2 + 2*int(totalNodes)
	minX := wordbuf.ReadFloat32(words, boundsOffset)
	assert.Equal(t, float32(0), minX)

	triOffset := boundsOffset + 6*int(totalNodes)
	assert.Equal(t, float32(1), wordbuf.ReadFloat32(words, triOffset+3))
}

func TestTranslationInvariantTopology(t *testing.T) {
	tris := []geom.Triangle{
		tri(r3.Vec{X: 0}, r3.Vec{X: 1}, r3.Vec{Y: 1}),
		tri(r3.Vec{X: 10}, r3.Vec{X: 11}, r3.Vec{X: 10, Y: 1}),
	}
	shift := r3.Vec{X: 100, Y: 50, Z: -25}
	shifted := make([]geom.Triangle, len(tris))
	for i, tr := range tris {
		shifted[i] = geom.Triangle{
			P0: r3.Add(tr.P0, shift),
			P1: r3.Add(tr.P1, shift),
			P2: r3.Add(tr.P2, shift),
		}
	}

	a, err := Build(tris, 1)
	require.NoError(t, err)
	b, err := Build(shifted, 1)
	require.NoError(t, err)

	require.Equal(t, len(a.Nodes), len(b.Nodes))
	for i := range a.Nodes {
		assert.Equal(t, a.Nodes[i].nPrimsAxis, b.Nodes[i].nPrimsAxis)
		assert.Equal(t, a.Nodes[i].firstInt, b.Nodes[i].firstInt)
		assert.InDelta(t, a.Nodes[i].bounds.Min.X+shift.X, b.Nodes[i].bounds.Min.X, 1e-6)
	}
}
