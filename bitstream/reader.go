// Package bitstream implements the positional reader every TDX decoder is
// built on: fixed-width scalar reads over a finite byte buffer, the
// protocol's variable-length signed integer format, and GBK string
// extraction.
//
// A Reader owns its buffer for the duration of one decode operation. Every
// read validates the remaining length first and fails with
// errs.ErrShortBuffer when fewer bytes remain than requested; decoders rely
// on that to detect truncated or mismatched payloads instead of silently
// producing garbage.
package bitstream

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/errs"
)

// Reader reads scalar and string fields from a byte buffer at an advancing
// cursor. Multi-byte scalar reads honor the endian engine fixed at
// construction. Not safe for concurrent use; each decode call owns its own
// Reader.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader positioned at offset 0 over data.
//
// The Reader does not copy data; the caller must not mutate the slice while
// the Reader is in use.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.data) }

// Bytes returns the whole underlying buffer, independent of the cursor.
func (r *Reader) Bytes() []byte { return r.data }

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Exhausted reports whether the cursor has reached the end of the buffer.
func (r *Reader) Exhausted() bool { return r.pos >= len(r.data) }

// Seek moves the cursor to an absolute position. Positions in [0, Len()] are
// valid; anything else fails with errs.ErrInvalidSeek.
//
// Seek(0) is how the K-line decoder rewinds for its second shape hypothesis.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: %d not in [0, %d]", errs.ErrInvalidSeek, pos, len(r.data))
	}
	r.pos = pos

	return nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if _, err := r.take(n); err != nil {
		return err
	}

	return nil
}

// ReadBytes returns the next n bytes and advances the cursor.
//
// The returned slice aliases the underlying buffer; callers that retain it
// past the decode call must copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// take returns the next n bytes, validating bounds.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d of %d", errs.ErrShortBuffer, n, r.pos, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Uint8 reads one unsigned byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a 16-bit unsigned integer in the reader's byte order.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// Uint32 reads a 32-bit unsigned integer in the reader's byte order.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Uint64 reads a 64-bit unsigned integer in the reader's byte order.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// Int8 reads one signed byte.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()

	return int8(v), err
}

// Int16 reads a 16-bit signed integer in the reader's byte order.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()

	return int16(v), err
}

// Int32 reads a 32-bit signed integer in the reader's byte order.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()

	return int32(v), err
}

// Int64 reads a 64-bit signed integer in the reader's byte order.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()

	return int64(v), err
}

// Float32 reads an IEEE 754 single-precision float in the reader's byte order.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// Float64 reads an IEEE 754 double-precision float in the reader's byte order.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// VarInt decodes the protocol's variable-length signed integer.
//
// First byte layout: continuation(0x80) | sign(0x40) | 6 low-order magnitude
// bits. Each continuation byte carries 7 further magnitude bits at positions
// 6, 13, 20, ... (lowest bits first). A set sign bit negates the decoded
// magnitude.
//
// The decode examines no bytes beyond the continuation chain; a chain that
// runs past the buffer end fails with errs.ErrShortBuffer.
func (r *Reader) VarInt() (int64, error) {
	b, err := r.Uint8()
	if err != nil {
		return 0, err
	}

	result := int64(b & 0x3f)
	negative := b&0x40 != 0
	shift := uint(6)

	for b&0x80 != 0 {
		b, err = r.Uint8()
		if err != nil {
			return 0, err
		}
		result += int64(b&0x7f) << shift
		shift += 7
	}

	if negative {
		return -result, nil
	}

	return result, nil
}

// FixedString reads exactly n bytes and decodes the prefix up to the first
// zero byte as GBK text. Bytes after the first zero inside the window are
// consumed but discarded, not validated.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			b = b[:i]

			break
		}
	}

	return DecodeGBK(b)
}

// CString reads byte-by-byte until a zero terminator and decodes the
// accumulated bytes as GBK text. The terminator is consumed.
func (r *Reader) CString() (string, error) {
	start := r.pos
	for {
		b, err := r.Uint8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return DecodeGBK(r.data[start : r.pos-1])
		}
	}
}

// DecodeGBK converts GBK-encoded bytes to a UTF-8 string.
//
// All human-readable text in the protocol uses this fixed regional encoding;
// it is a protocol constant, not negotiated.
func DecodeGBK(b []byte) (string, error) {
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode GBK text: %w", err)
	}

	return string(decoded), nil
}
