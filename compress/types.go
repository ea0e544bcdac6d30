package compress

// CompressionType identifies a compression algorithm in codec registries and
// in the bar-archive header.
type CompressionType uint8

const (
	// CompressionNone stores payloads uncompressed.
	CompressionNone CompressionType = 0x1
	// CompressionZlib is the algorithm the quotation server applies to
	// response payloads whose wire size differs from the logical size.
	CompressionZlib CompressionType = 0x2
	// CompressionZstd is Zstandard, the default for local bar archives.
	CompressionZstd CompressionType = 0x3
	// CompressionS2 is the S2 extension of Snappy.
	CompressionS2 CompressionType = 0x4
	// CompressionLZ4 is LZ4 block compression.
	CompressionLZ4 CompressionType = 0x5
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
