// Package pool provides reusable byte buffers for row assembly and
// compressed-chunk accumulation during image encoding.
package pool

import "sync"

const (
	// RowBufferDefaultSize covers one filter byte plus an RGB row of the
	// largest default export width (2^10 pixels).
	RowBufferDefaultSize = 1 + 1024*3

	// RowBufferMaxThreshold is the largest row buffer returned to the pool.
	// Rows beyond this (order > 12 exports) are left to the GC.
	RowBufferMaxThreshold = 1 + 4096*3

	// ChunkBufferDefaultSize is the initial capacity for accumulating a
	// compressed image-data chunk payload.
	ChunkBufferDefaultSize = 64 * 1024

	// ChunkBufferMaxThreshold is the largest chunk buffer returned to the
	// pool.
	ChunkBufferMaxThreshold = 4 * 1024 * 1024
)

// ByteBuffer is a growable byte slice with its backing array retained
// across Reset calls.
type ByteBuffer struct {
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends data to the buffer, growing it if necessary. It implements
// io.Writer and never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

var rowBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, RowBufferDefaultSize)}
	},
}

var chunkBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, ChunkBufferDefaultSize)}
	},
}

// GetRowBuffer returns an empty buffer sized for one export row.
func GetRowBuffer() *ByteBuffer {
	bb := rowBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutRowBuffer returns a row buffer to the pool. Oversized buffers are
// dropped to keep the pool's memory footprint bounded.
func PutRowBuffer(bb *ByteBuffer) {
	if cap(bb.B) > RowBufferMaxThreshold {
		return
	}
	rowBufferPool.Put(bb)
}

// GetChunkBuffer returns an empty buffer sized for a compressed chunk
// payload.
func GetChunkBuffer() *ByteBuffer {
	bb := chunkBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutChunkBuffer returns a chunk buffer to the pool, dropping oversized
// buffers.
func PutChunkBuffer(bb *ByteBuffer) {
	if cap(bb.B) > ChunkBufferMaxThreshold {
		return
	}
	chunkBufferPool.Put(bb)
}
