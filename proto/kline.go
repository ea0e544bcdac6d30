package proto

import (
	"errors"
	"fmt"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/errs"
)

// DecodeKLines decodes a K-line series response.
//
// The wire format is ambiguous: index instruments append two 16-bit
// advancing/declining issue counters to every bar that equity instruments
// omit, and nothing in the response says which shape was sent. The decoder
// first parses under the index hypothesis; if that runs off the end of the
// payload before the declared bar count is reached, it rewinds to offset 0
// and re-parses under the equity hypothesis. The rollback is the one place a
// short-buffer condition is recovered rather than surfaced.
func DecodeKLines(r *bitstream.Reader, category KLineCategory) ([]KLine, error) {
	bars, err := decodeKLineShape(r, category, true)
	if err == nil {
		return bars, nil
	}
	if !errors.Is(err, errs.ErrShortBuffer) {
		return nil, err
	}

	if err := r.Seek(0); err != nil {
		return nil, err
	}

	bars, err = decodeKLineShape(r, category, false)
	if errors.Is(err, errs.ErrShortBuffer) {
		return nil, fmt.Errorf("%w: payload fits neither bar shape", errs.ErrInvalidResponse)
	}

	return bars, err
}

// decodeKLineShape parses the whole payload under one shape hypothesis.
//
// Prices are delta-chained across bars: a running carry accumulates the
// absolute open of each bar, the close/high/low deltas apply on top of that
// bar's absolute open, and the next bar's carry is this bar's absolute
// close. All prices are scaled by 1000 on the wire.
func decodeKLineShape(r *bitstream.Reader, category KLineCategory, indexShape bool) ([]KLine, error) {
	f := newFieldReader(r)
	count := f.uint16()
	if f.err != nil {
		return nil, f.err
	}

	bars := make([]KLine, 0, count)
	carry := int64(0)
	for i := 0; i < int(count); i++ {
		var k KLine
		k.Time = f.barTime(category)

		openDelta := f.varint()
		closeDelta := f.varint()
		highDelta := f.varint()
		lowDelta := f.varint()

		openAbs := openDelta + carry
		k.Open = float64(openAbs) / 1000
		k.Close = float64(openAbs+closeDelta) / 1000
		k.High = float64(openAbs+highDelta) / 1000
		k.Low = float64(openAbs+lowDelta) / 1000
		carry = openAbs + closeDelta

		k.Volume = f.float32()
		k.Amount = f.float32()

		if indexShape {
			k.Advancing = f.uint16()
			k.Declining = f.uint16()
		}

		if f.err != nil {
			if errors.Is(f.err, errs.ErrShortBuffer) {
				return nil, f.err
			}

			return nil, fmt.Errorf("bar %d: %w", i, f.err)
		}
		bars = append(bars, k)
	}

	return bars, nil
}
