package proto

import (
	"time"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/encoding"
)

// fieldReader wraps a bitstream.Reader and latches the first read error, so
// the dense per-record field sequences decode without per-field error
// plumbing. After an error every read returns the zero value; callers check
// f.err once per record.
type fieldReader struct {
	r   *bitstream.Reader
	err error
}

func newFieldReader(r *bitstream.Reader) *fieldReader {
	return &fieldReader{r: r}
}

func (f *fieldReader) uint8() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint8()
	f.err = err

	return v
}

func (f *fieldReader) uint16() uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint16()
	f.err = err

	return v
}

func (f *fieldReader) uint32() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint32()
	f.err = err

	return v
}

func (f *fieldReader) int16() int16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Int16()
	f.err = err

	return v
}

// float32 reads a 32-bit float, widened to float64 for record fields.
func (f *fieldReader) float32() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Float32()
	f.err = err

	return float64(v)
}

func (f *fieldReader) varint() int64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.VarInt()
	f.err = err

	return v
}

func (f *fieldReader) bytes(n int) []byte {
	if f.err != nil {
		return nil
	}
	b, err := f.r.ReadBytes(n)
	f.err = err

	return b
}

func (f *fieldReader) fixedString(n int) string {
	if f.err != nil {
		return ""
	}
	s, err := f.r.FixedString(n)
	f.err = err

	return s
}

func (f *fieldReader) skip(n int) {
	if f.err != nil {
		return
	}
	f.err = f.r.Skip(n)
}

func (f *fieldReader) barTime(c KLineCategory) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	t, err := readBarTime(f.r, c)
	f.err = err

	return t
}

func (f *fieldReader) timeOfDay() encoding.TimeOfDay {
	if f.err != nil {
		return encoding.TimeOfDay{}
	}
	t, err := encoding.ReadTimeOfDay(f.r)
	f.err = err

	return t
}
