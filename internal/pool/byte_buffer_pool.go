// Package pool provides pooled byte buffers for payload assembly.
//
// The transport framer accumulates response payloads into a pooled buffer
// before inflation, and the archive encoder builds record payloads in one;
// both workloads are bursty with similar sizes, which is the case buffer
// pooling pays off for.
package pool

import "sync"

const (
	// PayloadBufferDefaultSize covers typical framed responses (a full quote
	// batch or K-line page is a few KiB compressed).
	PayloadBufferDefaultSize = 16 * 1024
	// PayloadBufferMaxThreshold is the largest buffer returned to the pool;
	// anything bigger is left to the garbage collector.
	PayloadBufferMaxThreshold = 128 * 1024
)

// ByteBuffer is a growable byte slice with explicit length control.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Reset empties the buffer, retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ExtendOrGrow lengthens the buffer by n bytes, reallocating if the capacity
// is insufficient, and returns the newly exposed region.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	if cap(bb.B)-start < n {
		bb.Grow(n)
	}
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by PayloadBufferDefaultSize to minimize
// reallocations; larger ones grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PayloadBufferDefaultSize
	if cap(bb.B) > 4*PayloadBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

var payloadBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(PayloadBufferDefaultSize)
	},
}

// GetPayloadBuffer obtains an empty ByteBuffer from the pool.
func GetPayloadBuffer() *ByteBuffer {
	bb := payloadBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutPayloadBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so a single huge response does not pin memory forever.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}
	payloadBufferPool.Put(bb)
}
