// Package tdxfile reads the persisted bar files the desktop terminal writes
// alongside its network client: one daily format and two minute formats that
// differ only in OHLC field width. All three are little-endian, record
// sequences with a 4-byte trailer per record, read to end-of-file.
package tdxfile

import (
	"fmt"
	"io"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/encoding"
	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/proto"
)

// ReadDayFile decodes a daily bar file: decimal-packed date, four raw uint32
// OHLC values, float32 amount, uint32 volume, 4-byte trailer.
func ReadDayFile(src io.Reader) ([]proto.Bar, error) {
	return readBars(src, func(f *barFields) (proto.Bar, error) {
		var bar proto.Bar
		var err error
		if bar.Time, err = encoding.ReadDailyTime(f.r); err != nil {
			return bar, err
		}
		bar.Open = f.uint32f()
		bar.High = f.uint32f()
		bar.Low = f.uint32f()
		bar.Close = f.uint32f()
		bar.Amount = f.float32()
		bar.Volume = f.uint32f()

		return bar, f.err
	})
}

// ReadMinuteFile decodes the older minute bar format: intraday packed
// date/time, four uint32 OHLC values scaled by 100, float32 amount, uint32
// volume, 4-byte trailer.
func ReadMinuteFile(src io.Reader) ([]proto.Bar, error) {
	return readBars(src, func(f *barFields) (proto.Bar, error) {
		var bar proto.Bar
		var err error
		if bar.Time, err = encoding.ReadIntradayTime(f.r); err != nil {
			return bar, err
		}
		bar.Open = f.uint32f() / 100
		bar.High = f.uint32f() / 100
		bar.Low = f.uint32f() / 100
		bar.Close = f.uint32f() / 100
		bar.Amount = f.float32()
		bar.Volume = f.uint32f()

		return bar, f.err
	})
}

// ReadMinuteLCFile decodes the newer "lc" minute bar format: intraday packed
// date/time, four raw float32 OHLC values, float32 amount, uint32 volume,
// 4-byte trailer.
func ReadMinuteLCFile(src io.Reader) ([]proto.Bar, error) {
	return readBars(src, func(f *barFields) (proto.Bar, error) {
		var bar proto.Bar
		var err error
		if bar.Time, err = encoding.ReadIntradayTime(f.r); err != nil {
			return bar, err
		}
		bar.Open = f.float32()
		bar.High = f.float32()
		bar.Low = f.float32()
		bar.Close = f.float32()
		bar.Amount = f.float32()
		bar.Volume = f.uint32f()

		return bar, f.err
	})
}

// barFields is the error-latching field helper for one record.
type barFields struct {
	r   *bitstream.Reader
	err error
}

func (f *barFields) uint32f() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Uint32()
	f.err = err

	return float64(v)
}

func (f *barFields) float32() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.Float32()
	f.err = err

	return float64(v)
}

// readBars loads the whole file and decodes records until the cursor reaches
// the length captured at open time.
func readBars(src io.Reader, decode func(*barFields) (proto.Bar, error)) ([]proto.Bar, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read bar file: %w", err)
	}

	r := bitstream.NewReader(data, endian.GetLittleEndianEngine())
	var bars []proto.Bar
	for !r.Exhausted() {
		f := &barFields{r: r}
		bar, err := decode(f)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(bars), err)
		}
		if err := r.Skip(4); err != nil {
			return nil, fmt.Errorf("record %d trailer: %w", len(bars), err)
		}
		bars = append(bars, bar)
	}

	return bars, nil
}
