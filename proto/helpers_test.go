package proto

import (
	"encoding/binary"
	"math"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/endian"
)

// payloadBuilder assembles synthetic response payloads for decoder tests,
// little-endian like the wire.
type payloadBuilder struct {
	b []byte
}

func (p *payloadBuilder) u8(v uint8) *payloadBuilder {
	p.b = append(p.b, v)

	return p
}

func (p *payloadBuilder) u16(v uint16) *payloadBuilder {
	p.b = binary.LittleEndian.AppendUint16(p.b, v)

	return p
}

func (p *payloadBuilder) u32(v uint32) *payloadBuilder {
	p.b = binary.LittleEndian.AppendUint32(p.b, v)

	return p
}

func (p *payloadBuilder) i16(v int16) *payloadBuilder {
	return p.u16(uint16(v))
}

func (p *payloadBuilder) f32(v float32) *payloadBuilder {
	return p.u32(math.Float32bits(v))
}

func (p *payloadBuilder) raw(b ...byte) *payloadBuilder {
	p.b = append(p.b, b...)

	return p
}

// fixedStr appends s zero-padded to n bytes.
func (p *payloadBuilder) fixedStr(s string, n int) *payloadBuilder {
	field := make([]byte, n)
	copy(field, s)
	p.b = append(p.b, field...)

	return p
}

// varint appends the sign-magnitude variable-length integer of the wire
// format.
func (p *payloadBuilder) varint(v int64) *payloadBuilder {
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

	if len(rest) > 0 {
		first |= 0x80
	}
	p.b = append(p.b, first)
	for i, b := range rest {
		if i < len(rest)-1 {
			b |= 0x80
		}
		p.b = append(p.b, b)
	}

	return p
}

func (p *payloadBuilder) reader() *bitstream.Reader {
	return bitstream.NewReader(p.b, endian.GetLittleEndianEngine())
}
