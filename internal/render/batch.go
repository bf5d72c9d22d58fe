package render

// maxBatchVertices keeps every DrawTriangles call within uint16 indices.
const maxBatchVertices = 1 << 16

// indexBatch renumbers mesh vertex indices into a uint16 batch, giving each
// mesh vertex one batch slot no matter how many triangles share it.
type indexBatch struct {
	slot    []int
	count   int
	indices []uint16
}

// reset clears the batch for a mesh with n vertices.
func (b *indexBatch) reset(n int) {
	if cap(b.slot) < n {
		b.slot = make([]int, n)
	}
	b.slot = b.slot[:n]
	for i := range b.slot {
		b.slot[i] = -1
	}
	b.count = 0
	b.indices = b.indices[:0]
}

// full reports whether another triangle could overflow the batch.
func (b *indexBatch) full() bool { return b.count+3 > maxBatchVertices }

// add appends mesh vertex vi to the index list. It reports true when vi is
// new to the batch and its vertex data must be appended by the caller.
func (b *indexBatch) add(vi int) bool {
	fresh := b.slot[vi] < 0
	if fresh {
		b.slot[vi] = b.count
		b.count++
	}
	b.indices = append(b.indices, uint16(b.slot[vi]))
	return fresh
}
