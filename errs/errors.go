// Package errs defines the sentinel error values shared across the tdx packages.
//
// Callers should test for these with errors.Is; most call sites wrap them with
// fmt.Errorf("...: %w", err) to add positional or operational context.
package errs

import "errors"

var (
	// ErrShortBuffer indicates a read past the end of a payload buffer.
	// Decoders rely on this to detect malformed or truncated responses; the
	// K-line decoder additionally uses it to switch between the index and
	// equity response shapes.
	ErrShortBuffer = errors.New("read past end of buffer")

	// ErrInvalidSeek indicates a seek outside the [0, len] range of a buffer.
	ErrInvalidSeek = errors.New("seek position out of range")

	// ErrTransport indicates the connection was closed or broken before a
	// complete frame was received. Never retried by this library.
	ErrTransport = errors.New("transport failure")

	// ErrCorruptPayload indicates a compressed payload that failed to inflate
	// or inflated to a length different from the declared logical size.
	ErrCorruptPayload = errors.New("corrupt response payload")

	// ErrUnknownMarket indicates a market byte with no known mapping.
	ErrUnknownMarket = errors.New("unknown market code")

	// ErrInvalidArchive indicates a bar archive with a bad magic number,
	// unsupported version, or inconsistent record count.
	ErrInvalidArchive = errors.New("invalid bar archive")

	// ErrInvalidResponse indicates a response whose shape does not match the
	// decoder for the request that produced it.
	ErrInvalidResponse = errors.New("unexpected response shape")
)
