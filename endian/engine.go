// Package endian provides byte order utilities for wire decoding.
//
// The TDX quotation protocol is little-endian throughout, so almost every
// reader in this module is built with GetLittleEndianEngine(). The big-endian
// engine exists because the bitstream reader is endianness-configurable and
// some callers decode third-party captures recorded in network order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface, so the same engine value can drive both payload
// decoding and request construction.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian; engines are
// stateless and safe for concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the wire order of
// the TDX protocol.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
