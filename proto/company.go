package proto

import (
	"fmt"

	"github.com/mwquote/tdx/bitstream"
)

// DecodeCompanyInfoEntries decodes the company filing index: per document a
// 64-byte zero-padded GBK name, an 80-byte zero-padded GBK filename, and the
// 32-bit offset/length pair used to request the content.
func DecodeCompanyInfoEntries(r *bitstream.Reader) ([]CompanyInfoEntry, error) {
	f := newFieldReader(r)
	count := f.uint16()
	if f.err != nil {
		return nil, f.err
	}

	entries := make([]CompanyInfoEntry, 0, count)
	for i := 0; i < int(count); i++ {
		entry := CompanyInfoEntry{
			Name:     f.fixedString(64),
			Filename: f.fixedString(80),
			Start:    f.uint32(),
			Length:   f.uint32(),
		}
		if f.err != nil {
			return nil, fmt.Errorf("company info entry %d: %w", i, f.err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DecodeCompanyInfoContent decodes one filing excerpt: a 10-byte echo of the
// request parameters, then a 16-bit length and that many bytes of GBK text.
func DecodeCompanyInfoContent(r *bitstream.Reader) (string, error) {
	f := newFieldReader(r)
	f.skip(10)
	length := f.uint16()
	text := f.bytes(int(length))
	if f.err != nil {
		return "", f.err
	}

	return bitstream.DecodeGBK(text)
}
