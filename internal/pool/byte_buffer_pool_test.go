package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWrite(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 8, bb.Cap())

	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))
	require.Equal(t, []byte("hello world"), bb.Bytes())
	require.Equal(t, 11, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	copy(bb.ExtendOrGrow(4), "abcd")
	require.Equal(t, []byte("abcd"), bb.Bytes())

	// Extending beyond capacity reallocates and keeps existing content.
	region := bb.ExtendOrGrow(10)
	require.Len(t, region, 10)
	copy(region, "0123456789")
	require.Equal(t, []byte("abcd0123456789"), bb.Bytes())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(100)
	require.GreaterOrEqual(t, bb.Cap(), 100)
	require.Equal(t, 0, bb.Len())

	// Growing within spare capacity is a no-op.
	before := bb.Cap()
	bb.Grow(10)
	require.Equal(t, before, bb.Cap())
}

func TestPayloadBufferPool(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("payload"))
	PutPayloadBuffer(bb)

	// Pooled buffers come back empty regardless of prior content.
	again := GetPayloadBuffer()
	require.Equal(t, 0, again.Len())
	PutPayloadBuffer(again)
}

func TestPutPayloadBufferDropsOversized(t *testing.T) {
	huge := NewByteBuffer(PayloadBufferMaxThreshold + 1)
	PutPayloadBuffer(huge) // must not panic, silently dropped
	PutPayloadBuffer(nil)
}
