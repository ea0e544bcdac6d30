// Package archive persists decoded bar series locally.
//
// An archive is a small self-describing blob: a fixed 20-byte header
// identifying the format, the compression codec and the symbol, followed by a
// codec-compressed payload of fixed-width little-endian bar records. The
// symbol is stored as its xxHash64 so the header stays fixed-size regardless
// of symbol naming; Decode exposes the hash for verification against an
// expected symbol.
package archive

import (
	"fmt"
	"math"
	"time"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/compress"
	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/errs"
	"github.com/mwquote/tdx/internal/hash"
	"github.com/mwquote/tdx/internal/pool"
	"github.com/mwquote/tdx/proto"
)

const (
	// Magic identifies a bar archive ("TDXB" little-endian).
	Magic uint32 = 0x42584454
	// Version is the current archive format version.
	Version uint8 = 1

	headerSize = 20
	recordSize = 56 // int64 timestamp + six float64 fields
)

// Archive is one decoded bar archive.
type Archive struct {
	SymbolID    uint64
	Compression compress.CompressionType
	Bars        []proto.Bar
}

// SymbolID computes the stable identifier stored in an archive header for a
// symbol such as "SH600000".
func SymbolID(symbol string) uint64 {
	return hash.ID(symbol)
}

// Encode serializes bars into an archive blob compressed with the given
// codec.
func Encode(symbol string, bars []proto.Bar, compression compress.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	buf.Grow(len(bars) * recordSize)
	for _, bar := range bars {
		buf.B = engine.AppendUint64(buf.B, uint64(bar.Time.Unix()))
		for _, v := range [...]float64{bar.Open, bar.High, bar.Low, bar.Close, bar.Amount, bar.Volume} {
			buf.B = engine.AppendUint64(buf.B, floatBits(v))
		}
	}

	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress archive payload: %w", err)
	}

	out := make([]byte, 0, headerSize+len(payload))
	out = engine.AppendUint32(out, Magic)
	out = append(out, Version, uint8(compression))
	out = engine.AppendUint16(out, 0) // reserved
	out = engine.AppendUint32(out, uint32(len(bars)))
	out = engine.AppendUint64(out, SymbolID(symbol))
	out = append(out, payload...)

	return out, nil
}

// Decode parses an archive blob, decompresses its payload and rebuilds the
// bar records. A bad magic number, unknown version, unregistered codec, or a
// payload whose length disagrees with the declared record count all fail with
// errs.ErrInvalidArchive.
func Decode(data []byte) (Archive, error) {
	var a Archive
	if len(data) < headerSize {
		return a, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidArchive, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	hr := bitstream.NewReader(data[:headerSize], engine)
	f := headerFields{r: hr}
	magic := f.uint32()
	version := f.uint8()
	compression := compress.CompressionType(f.uint8())
	f.skip(2)
	count := f.uint32()
	a.SymbolID = f.uint64()
	if f.err != nil {
		return a, f.err
	}

	if magic != Magic {
		return a, fmt.Errorf("%w: bad magic 0x%08x", errs.ErrInvalidArchive, magic)
	}
	if version != Version {
		return a, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidArchive, version)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return a, fmt.Errorf("%w: %v", errs.ErrInvalidArchive, err)
	}
	a.Compression = compression

	payload, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return a, fmt.Errorf("%w: %v", errs.ErrInvalidArchive, err)
	}
	if len(payload) != int(count)*recordSize {
		return a, fmt.Errorf("%w: payload is %d bytes, %d records need %d",
			errs.ErrInvalidArchive, len(payload), count, int(count)*recordSize)
	}

	r := bitstream.NewReader(payload, engine)
	a.Bars = make([]proto.Bar, 0, count)
	for i := 0; i < int(count); i++ {
		bar, err := readBar(r)
		if err != nil {
			return a, fmt.Errorf("archive record %d: %w", i, err)
		}
		a.Bars = append(a.Bars, bar)
	}

	return a, nil
}

func floatBits(v float64) uint64 { return math.Float64bits(v) }

// unixUTC rebuilds the zone-neutral wall-clock convention the wire decoders
// use.
func unixUTC(ts int64) time.Time { return time.Unix(ts, 0).UTC() }

func readBar(r *bitstream.Reader) (proto.Bar, error) {
	var bar proto.Bar
	ts, err := r.Int64()
	if err != nil {
		return bar, err
	}
	bar.Time = unixUTC(ts)

	fields := [...]*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Amount, &bar.Volume}
	for _, dst := range fields {
		v, err := r.Float64()
		if err != nil {
			return bar, err
		}
		*dst = v
	}

	return bar, nil
}

type headerFields struct {
	r   *bitstream.Reader
	err error
}

func (f *headerFields) uint8() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint8()
	f.err = err

	return v
}

func (f *headerFields) uint32() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint32()
	f.err = err

	return v
}

func (f *headerFields) uint64() uint64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint64()
	f.err = err

	return v
}

func (f *headerFields) skip(n int) {
	if f.err != nil {
		return
	}
	f.err = f.r.Skip(n)
}
