package compress

// ZstdCompressor provides Zstandard compression, the default for local bar
// archives where compression ratio matters more than encode speed.
//
// The implementation is selected at build time: cgo builds use valyala/gozstd
// (libzstd bindings), non-cgo builds fall back to the pure-Go
// klauspost/compress/zstd implementation. Both produce interchangeable
// streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
