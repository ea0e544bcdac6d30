package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/errs"
)

// encodeVarInt builds the wire form of the protocol's signed varint for test
// payloads: sign-magnitude with 6 bits in the first byte and 7-bit groups in
// continuation bytes, lowest bits first.
func encodeVarInt(v int64) []byte {
	mag := v
	sign := byte(0)
	if v < 0 {
		mag = -v
		sign = 0x40
	}

	first := byte(mag&0x3f) | sign
	mag >>= 6

	var rest []byte
	for mag > 0 {
		rest = append(rest, byte(mag&0x7f))
		mag >>= 7
	}

	out := []byte{first}
	if len(rest) > 0 {
		out[0] |= 0x80
	}
	for i, b := range rest {
		if i < len(rest)-1 {
			b |= 0x80
		}
		out = append(out, b)
	}

	return out
}

func TestReader_VarIntRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 5, -5,
		63, -63, 64, -64, // 6-bit boundary
		8191, -8191, 8192, -8192, // first 7-bit group boundary
		1048575, 1048576, // second 7-bit group boundary
		123456789, -123456789,
	}

	for _, v := range values {
		r := NewReader(encodeVarInt(v), endian.GetLittleEndianEngine())
		got, err := r.VarInt()
		require.NoError(t, err, "value %d", v)
		require.Equal(t, v, got)
		require.True(t, r.Exhausted(), "value %d left %d bytes", v, r.Remaining())
	}
}

func TestReader_VarIntSignBit(t *testing.T) {
	// 0x40 alone is -0 on the wire; accept it as zero.
	r := NewReader([]byte{0x40}, endian.GetLittleEndianEngine())
	got, err := r.VarInt()
	require.NoError(t, err)
	require.Equal(t, int64(0), got)

	// 0x41 decodes to -1.
	r = NewReader([]byte{0x41}, endian.GetLittleEndianEngine())
	got, err = r.VarInt()
	require.NoError(t, err)
	require.Equal(t, int64(-1), got)
}

func TestReader_VarIntContinuationPastEnd(t *testing.T) {
	// Continuation bit set but no following byte: must fail, not truncate.
	r := NewReader([]byte{0x81}, endian.GetLittleEndianEngine())
	_, err := r.VarInt()
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}

func TestReader_Endianness(t *testing.T) {
	pattern := []byte{0x01, 0x02, 0x03, 0x04}

	le := NewReader(pattern, endian.GetLittleEndianEngine())
	v, err := le.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), v)

	be := NewReader(pattern, endian.GetBigEndianEngine())
	v, err = be.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), v)
}

func TestReader_Scalars(t *testing.T) {
	data := []byte{
		0xff,                   // uint8
		0x34, 0x12,             // uint16
		0x00, 0x00, 0x80, 0x3f, // float32 1.0
		0xfe, 0xff, // int16 -2
	}
	r := NewReader(data, endian.GetLittleEndianEngine())

	b, err := r.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xff), b)

	u16, err := r.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	f, err := r.Float32()
	require.NoError(t, err)
	require.InDelta(t, 1.0, f, 1e-9)

	i16, err := r.Int16()
	require.NoError(t, err)
	require.Equal(t, int16(-2), i16)

	require.True(t, r.Exhausted())
}

func TestReader_ShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02}, endian.GetLittleEndianEngine())
	_, err := r.Uint32()
	require.ErrorIs(t, err, errs.ErrShortBuffer)
	// A failed read must not move the cursor.
	require.Equal(t, 0, r.Pos())
}

func TestReader_SeekSkip(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3, 4, 5}, endian.GetLittleEndianEngine())

	require.NoError(t, r.Skip(4))
	require.Equal(t, 4, r.Pos())
	require.Equal(t, 2, r.Remaining())

	require.NoError(t, r.Seek(0))
	require.Equal(t, 0, r.Pos())
	require.Equal(t, 6, r.Remaining())

	require.NoError(t, r.Seek(6))
	require.True(t, r.Exhausted())

	require.ErrorIs(t, r.Seek(7), errs.ErrInvalidSeek)
	require.ErrorIs(t, r.Seek(-1), errs.ErrInvalidSeek)
	require.ErrorIs(t, r.Skip(1), errs.ErrShortBuffer)
}

func TestReader_FixedString(t *testing.T) {
	// "abc" zero-padded to 8 bytes; junk after the first zero is discarded.
	data := []byte{'a', 'b', 'c', 0x00, 0xff, 0xfe, 0x00, 0x7a, 'x'}
	r := NewReader(data, endian.GetLittleEndianEngine())

	s, err := r.FixedString(8)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
	// The full window is consumed regardless of where the zero sat.
	require.Equal(t, 8, r.Pos())

	_, err = r.FixedString(2)
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}

func TestReader_FixedStringGBK(t *testing.T) {
	// "浦发银行" in GBK, zero-padded to 10 bytes.
	data := []byte{0xc6, 0xd6, 0xb7, 0xa2, 0xd2, 0xf8, 0xd0, 0xd0, 0x00, 0x00}
	r := NewReader(data, endian.GetLittleEndianEngine())

	s, err := r.FixedString(10)
	require.NoError(t, err)
	require.Equal(t, "浦发银行", s)
}

func TestReader_CString(t *testing.T) {
	data := []byte{'h', 'i', 0x00, 'z'}
	r := NewReader(data, endian.GetLittleEndianEngine())

	s, err := r.CString()
	require.NoError(t, err)
	require.Equal(t, "hi", s)
	require.Equal(t, 3, r.Pos())

	// Unterminated string runs off the buffer.
	_, err = r.CString()
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}
