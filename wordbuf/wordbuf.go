// Package wordbuf implements the contiguous 32-bit-word blob encoding
// shared by the bvh, voxelgrid, and svo builders (spec.md §6): every blob
// is a single []uint32 in which integer and float words share the buffer,
// and consumers reinterpret each slot per the documented layout.
package wordbuf

import "math"

// Buffer accumulates words in emission order.
type Buffer struct {
	words []uint32
}

// New returns an empty Buffer with capacity for n words preallocated.
func New(capacity int) *Buffer {
	return &Buffer{words: make([]uint32, 0, capacity)}
}

// PutInt appends an integer word.
func (b *Buffer) PutInt(v int32) {
	b.words = append(b.words, uint32(v))
}

// PutFloat32 appends a float word.
func (b *Buffer) PutFloat32(v float32) {
	b.words = append(b.words, math.Float32bits(v))
}

// Len returns the number of words written so far.
func (b *Buffer) Len() int {
	return len(b.words)
}

// SetInt overwrites a previously emitted word with an integer value, so a
// word can be back-patched once its value becomes known. The bvh and svo
// encoders do not call it: they resolve child offsets before emitting.
func (b *Buffer) SetInt(offset int, v int32) {
	b.words[offset] = uint32(v)
}

// Words returns the accumulated blob.
func (b *Buffer) Words() []uint32 {
	return b.words
}

// ReadInt reinterprets word i as a signed 32-bit integer.
func ReadInt(words []uint32, i int) int32 {
	return int32(words[i])
}

// ReadFloat32 reinterprets word i as a float32.
func ReadFloat32(words []uint32, i int) float32 {
	return math.Float32frombits(words[i])
}
