package bvh

import (
	"github.com/gridforge/meshaccel/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// numBuckets is the bucket count B from spec.md §4.1 step 5.
const numBuckets = 12

// buildNode is the transient tree node produced during recursion
// (spec.md §3, BVHNode). Exactly one of (left, right) or
// (firstPrimOffset, nPrimitives) is populated: nPrimitives > 0 iff leaf.
type buildNode struct {
	bounds          geom.Bounds
	left, right     *buildNode
	splitAxis       int
	firstPrimOffset int
	nPrimitives     int
}

// builder holds the mutable state threaded through the recursion: the
// primitive-info slice (permuted in place, spec.md §3) and the
// ordered-primitive table leaves append their span to.
type builder struct {
	infos         []primitiveInfo
	orderedPrims  []int
	leafThreshold int
}

// build runs the recursive SAH partition search over infos[lo:hi] and
// returns the root of the transient tree for that span.
func (bd *builder) build(lo, hi int) *buildNode {
	bounds := geom.Empty()
	for i := lo; i < hi; i++ {
		bounds = bounds.Union(bd.infos[i].bounds)
	}

	nPrims := hi - lo

	// Degenerate exit: zero surface area or too few primitives to split.
	if bounds.SurfaceArea() == 0 || nPrims < bd.leafThreshold {
		return bd.makeLeaf(lo, hi, bounds)
	}

	centroidBounds := geom.Empty()
	for i := lo; i < hi; i++ {
		centroidBounds = centroidBounds.UnionPoint(bd.infos[i].centroid)
	}
	axis := centroidBounds.MaximumExtent()

	// Coplanar-centroid exit.
	if geom.Axis(centroidBounds.Min, axis) == geom.Axis(centroidBounds.Max, axis) {
		return bd.makeLeaf(lo, hi, bounds)
	}

	splitBucket, found := bd.findBestSplit(lo, hi, bounds, centroidBounds, axis)
	if !found {
		return bd.makeLeaf(lo, hi, bounds)
	}

	mid := bd.partition(lo, hi, axis, centroidBounds, splitBucket)
	if mid == lo || mid == hi {
		// The bucket sweep found a split but every primitive landed on
		// one side (can happen when many centroids share a bucket); fall
		// back to a leaf rather than recurse on an empty span.
		return bd.makeLeaf(lo, hi, bounds)
	}

	left := bd.build(lo, mid)
	right := bd.build(mid, hi)
	return &buildNode{
		bounds:    bounds,
		left:      left,
		right:     right,
		splitAxis: axis,
	}
}

func (bd *builder) makeLeaf(lo, hi int, bounds geom.Bounds) *buildNode {
	firstOffset := len(bd.orderedPrims)
	for i := lo; i < hi; i++ {
		bd.orderedPrims = append(bd.orderedPrims, bd.infos[i].index)
	}
	return &buildNode{
		bounds:          bounds,
		firstPrimOffset: firstOffset,
		nPrimitives:     hi - lo,
	}
}

// bucket holds the running count and union bounds of the primitives whose
// centroid offset falls in it.
type bucket struct {
	count  int
	bounds geom.Bounds
}

// bucketFor computes the clamped bucket index for a centroid along axis
// (spec.md §4.1 step 5).
func bucketFor(centroid r3.Vec, axis int, centroidBounds geom.Bounds) int {
	offset := centroidBounds.Offset(centroid)
	b := int(geom.Axis(offset, axis) * float64(numBuckets))
	if b >= numBuckets {
		b = numBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// findBestSplit bins primitives into numBuckets buckets along axis, sweeps
// the B-1 candidate splits, and returns the index of the lowest-cost
// split with cost > 0 that beats the leaf cost (spec.md §4.1 steps 5-8).
func (bd *builder) findBestSplit(lo, hi int, bounds, centroidBounds geom.Bounds, axis int) (splitBucket int, found bool) {
	buckets := make([]bucket, numBuckets)
	for i := range buckets {
		buckets[i].bounds = geom.Empty()
	}
	for i := lo; i < hi; i++ {
		b := bucketFor(bd.infos[i].centroid, axis, centroidBounds)
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(bd.infos[i].bounds)
	}

	// Prefix/suffix sweep. Unioning with an empty bucket's geom.Empty()
	// bounds is a no-op, which is exactly the "carry forward the last
	// established surface area" behavior spec.md's Open Questions call
	// out for empty buckets — no special case is needed for it.
	belowBounds := make([]geom.Bounds, numBuckets-1)
	belowCount := make([]int, numBuckets-1)
	running := geom.Empty()
	count := 0
	for i := 0; i < numBuckets-1; i++ {
		running = running.Union(buckets[i].bounds)
		count += buckets[i].count
		belowBounds[i] = running
		belowCount[i] = count
	}

	aboveBounds := make([]geom.Bounds, numBuckets-1)
	aboveCount := make([]int, numBuckets-1)
	running = geom.Empty()
	count = 0
	for i := numBuckets - 1; i >= 1; i-- {
		running = running.Union(buckets[i].bounds)
		count += buckets[i].count
		aboveBounds[i-1] = running
		aboveCount[i-1] = count
	}

	bestCost := 0.0
	found = false
	for i := 0; i < numBuckets-1; i++ {
		cost := float64(belowCount[i])*belowBounds[i].SurfaceArea() + float64(aboveCount[i])*aboveBounds[i].SurfaceArea()
		if cost <= 0 {
			continue
		}
		if !found || cost < bestCost {
			bestCost = cost
			splitBucket = i
			found = true
		}
	}
	if !found {
		return 0, false
	}

	normalizedCost := 0.5 + bestCost/bounds.SurfaceArea()
	leafCost := float64(hi - lo)
	if normalizedCost >= leafCost {
		return 0, false
	}
	return splitBucket, true
}

// partition groups the span in place (spec.md §4.1 step 9 and §9's Design
// Notes) with a single forward pass that swaps every primitive whose
// bucket index is <= splitBucket to the front of the span, leaving the
// rest at the back; the returned mid is the first index of the "greater"
// group.
func (bd *builder) partition(lo, hi, axis int, centroidBounds geom.Bounds, splitBucket int) int {
	store := lo
	for i := lo; i < hi; i++ {
		if bucketFor(bd.infos[i].centroid, axis, centroidBounds) <= splitBucket {
			bd.infos[store], bd.infos[i] = bd.infos[i], bd.infos[store]
			store++
		}
	}
	return store
}
