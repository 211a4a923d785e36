package voxelgrid

import "github.com/gridforge/meshaccel/wordbuf"

// Encode serializes the grid to the word layout of spec.md §6: origin
// (3 floats), grid dimensions (3 ints), voxel size (1 float), then one
// (normal.x, normal.y, normal.z, filled) record per voxel in x-fastest,
// then y, then z order — filled is 1 if count > 0, else 0, and the
// normal is the per-voxel average (zero vector for an empty voxel).
func (g *Grid) Encode() []uint32 {
	n := len(g.Voxels)
	buf := wordbuf.New(3 + 3 + 1 + 4*n)

	buf.PutFloat32(float32(g.Origin.X))
	buf.PutFloat32(float32(g.Origin.Y))
	buf.PutFloat32(float32(g.Origin.Z))

	buf.PutInt(int32(g.NX))
	buf.PutInt(int32(g.NY))
	buf.PutInt(int32(g.NZ))

	buf.PutFloat32(float32(g.VoxelSize))

	for _, v := range g.Voxels {
		if v.Count == 0 {
			buf.PutFloat32(0)
			buf.PutFloat32(0)
			buf.PutFloat32(0)
			buf.PutInt(0)
			continue
		}
		inv := 1.0 / float64(v.Count)
		buf.PutFloat32(float32(v.NormalSum.X * inv))
		buf.PutFloat32(float32(v.NormalSum.Y * inv))
		buf.PutFloat32(float32(v.NormalSum.Z * inv))
		buf.PutInt(1)
	}

	return buf.Words()
}
