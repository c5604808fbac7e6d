// Package pool provides pooled byte buffers for building blobs and store snapshots.
package pool

import (
	"io"
	"sync"
)

// Default sizes of the pooled buffers. Blob buffers hold a single encoded value,
// which is almost always small; snapshot buffers hold a whole store.
const (
	BlobBufferDefaultSize      = 256             // 256B
	BlobBufferMaxThreshold     = 1024 * 64       // 64KiB
	SnapshotBufferDefaultSize  = 1024 * 64       // 64KiB
	SnapshotBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is an append-only byte slice that array encoders write into
// in place.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with capacity size.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the written bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of written bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns B[start:end] for filling reserved space.
// Panics if the range lies outside the capacity.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("pool: slice out of range")
	}

	return bb.B[start:end]
}

// ExtendOrGrow reserves n more bytes at the end of the buffer, reallocating
// when the capacity is short. The reserved bytes are filled through Slice.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	if cap(bb.B)-start < n {
		bb.Grow(n)
	}
	bb.B = bb.B[:start+n]
}

// Grow makes room for at least n more bytes without changing the length.
//
// Buffers up to 1KiB grow in BlobBufferDefaultSize steps; bigger ones grow by
// a quarter of their capacity, or by n when that is larger.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := BlobBufferDefaultSize
	if cap(bb.B) > 4*BlobBufferDefaultSize {
		step = cap(bb.B) / 4
	}
	step = max(step, n)

	grown := make([]byte, len(bb.B), len(bb.B)+step)
	copy(grown, bb.B)
	bb.B = grown
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool. Buffers whose
// capacity exceeds maxThreshold are dropped on Put instead of being kept.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with capacity size. A
// maxThreshold of zero keeps every buffer.
func NewByteBufferPool(size int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(size) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put empties bb and returns it to the pool. Nil is ignored.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.B = bb.B[:0]
	bbp.pool.Put(bb)
}

var (
	blobPool     = NewByteBufferPool(BlobBufferDefaultSize, BlobBufferMaxThreshold)
	snapshotPool = NewByteBufferPool(SnapshotBufferDefaultSize, SnapshotBufferMaxThreshold)
)

// GetBlobBuffer takes a buffer for encoding one value.
func GetBlobBuffer() *ByteBuffer { return blobPool.Get() }

// PutBlobBuffer releases a buffer taken with GetBlobBuffer.
func PutBlobBuffer(bb *ByteBuffer) { blobPool.Put(bb) }

// GetSnapshotBuffer takes a buffer for writing a store snapshot.
func GetSnapshotBuffer() *ByteBuffer { return snapshotPool.Get() }

// PutSnapshotBuffer releases a buffer taken with GetSnapshotBuffer.
func PutSnapshotBuffer(bb *ByteBuffer) { snapshotPool.Put(bb) }
