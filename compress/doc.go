// Package compress provides the compression codecs used by the tdx module.
//
// Two consumers share the registry:
//
//   - the transport framer, which inflates zlib-compressed response payloads
//     whenever the frame header's wire size differs from its logical size
//   - the bar archive, which stores downloaded series under any of the
//     registered algorithms (zstd by default)
//
// Codecs are stateless values; all are safe for concurrent use. Use GetCodec
// to resolve a Codec from a CompressionType recorded in an archive header.
package compress
