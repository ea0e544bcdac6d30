// Package transport implements the request/response framing of the TDX
// quotation protocol.
//
// Every exchange is one blocking round trip: the request payload is written
// in full, then a fixed 16-byte header is read, then exactly the declared
// number of payload bytes. The header carries a wire size and a logical size;
// when they differ the payload is a zlib stream that must inflate to exactly
// the logical size. No retry or reconnection happens at this layer, and no
// timeout is enforced here: callers set socket deadlines before invoking it.
package transport

import (
	"fmt"
	"io"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/compress"
	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/errs"
	"github.com/mwquote/tdx/internal/pool"
)

// HeaderSize is the fixed length of a response frame header: three opaque
// 32-bit fields, a uint16 wire size and a uint16 logical size.
const HeaderSize = 16

// RoundTrip writes request to rw, reads one complete framed response, and
// returns a little-endian bitstream.Reader positioned at offset 0 over the
// decompressed payload.
//
// A connection closed or broken before the header and payload are complete
// fails with errs.ErrTransport; a payload that fails to inflate, or inflates
// to a length other than the declared logical size, fails with
// errs.ErrCorruptPayload.
func RoundTrip(rw io.ReadWriter, request []byte) (*bitstream.Reader, error) {
	if _, err := rw.Write(request); err != nil {
		return nil, fmt.Errorf("%w: write request: %v", errs.ErrTransport, err)
	}

	var header [HeaderSize]byte
	if _, err := io.ReadFull(rw, header[:]); err != nil {
		return nil, fmt.Errorf("%w: read frame header: %v", errs.ErrTransport, err)
	}

	wireSize, logicalSize, err := parseHeader(header[:])
	if err != nil {
		return nil, err
	}

	// A single read is not assumed to return the full payload; io.ReadFull
	// loops until wireSize bytes have accumulated.
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	if _, err := io.ReadFull(rw, buf.ExtendOrGrow(int(wireSize))); err != nil {
		return nil, fmt.Errorf("%w: read %d payload bytes: %v", errs.ErrTransport, wireSize, err)
	}

	payload, err := unpack(buf.Bytes(), wireSize, logicalSize)
	if err != nil {
		return nil, err
	}

	return bitstream.NewReader(payload, endian.GetLittleEndianEngine()), nil
}

// parseHeader extracts the wire and logical sizes from a frame header.
func parseHeader(header []byte) (wireSize, logicalSize uint16, err error) {
	hr := bitstream.NewReader(header, endian.GetLittleEndianEngine())
	// Three sequence/reserved words, opaque at this layer.
	if err := hr.Skip(12); err != nil {
		return 0, 0, err
	}
	if wireSize, err = hr.Uint16(); err != nil {
		return 0, 0, err
	}
	if logicalSize, err = hr.Uint16(); err != nil {
		return 0, 0, err
	}

	return wireSize, logicalSize, nil
}

// unpack yields the logical payload, inflating when the sizes declare
// compression. The returned slice never aliases raw, which goes back to the
// buffer pool.
func unpack(raw []byte, wireSize, logicalSize uint16) ([]byte, error) {
	if wireSize == logicalSize {
		payload := make([]byte, len(raw))
		copy(payload, raw)

		return payload, nil
	}

	codec := compress.NewZlibCompressor()
	payload, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", errs.ErrCorruptPayload, err)
	}
	if len(payload) != int(logicalSize) {
		return nil, fmt.Errorf("%w: inflated to %d bytes, header declared %d",
			errs.ErrCorruptPayload, len(payload), logicalSize)
	}

	return payload, nil
}
