package proto

import (
	"fmt"

	"github.com/mwquote/tdx/bitstream"
)

// decodeMinuteTicks is the shared loop of the live and history minute-curve
// decoders; the two differ only in the width of the reserved gap after the
// count.
func decodeMinuteTicks(r *bitstream.Reader, leadingSkip int) ([]MinuteTick, error) {
	f := newFieldReader(r)
	count := f.uint16()
	f.skip(leadingSkip)
	if f.err != nil {
		return nil, f.err
	}

	// Prices are cumulative: each tick carries a signed delta against the
	// running last price, scaled by 100.
	lastPrice := int64(0)
	ticks := make([]MinuteTick, 0, count)
	for i := 0; i < int(count); i++ {
		priceDelta := f.varint()
		f.varint() // reserved
		lastPrice += priceDelta
		tick := MinuteTick{
			Price:  float64(lastPrice) / 100,
			Volume: f.varint(),
		}
		if f.err != nil {
			return nil, fmt.Errorf("minute tick %d: %w", i, f.err)
		}
		ticks = append(ticks, tick)
	}

	return ticks, nil
}

// DecodeMinuteTicks decodes the intraday minute curve of the current session.
func DecodeMinuteTicks(r *bitstream.Reader) ([]MinuteTick, error) {
	return decodeMinuteTicks(r, 2)
}

// DecodeHistoryMinuteTicks decodes the minute curve of a past session. The
// history response variant carries a wider reserved gap after the count.
func DecodeHistoryMinuteTicks(r *bitstream.Reader) ([]MinuteTick, error) {
	return decodeMinuteTicks(r, 4)
}

// DecodeTransactions decodes trade ticks of the current session.
//
// Each record: time of day, cumulative price delta, volume, trade count,
// buy/sell-side indicator, plus one trailing reserved varint that is consumed
// and discarded.
func DecodeTransactions(r *bitstream.Reader) ([]Transaction, error) {
	return decodeTransactions(r, 0, true)
}

// DecodeHistoryTransactions decodes trade ticks of a past session: a 4-byte
// reserved gap after the count, and no trailing reserved field per record.
func DecodeHistoryTransactions(r *bitstream.Reader) ([]Transaction, error) {
	return decodeTransactions(r, 4, false)
}

func decodeTransactions(r *bitstream.Reader, leadingSkip int, trailingReserved bool) ([]Transaction, error) {
	f := newFieldReader(r)
	count := f.uint16()
	f.skip(leadingSkip)
	if f.err != nil {
		return nil, f.err
	}

	lastPrice := int64(0)
	trades := make([]Transaction, 0, count)
	for i := 0; i < int(count); i++ {
		var t Transaction
		t.Time = f.timeOfDay()
		lastPrice += f.varint()
		t.Price = float64(lastPrice) / 100
		t.Volume = f.varint()
		t.Count = f.varint()
		t.BuyOrSell = f.varint()
		if trailingReserved {
			f.varint()
		}
		if f.err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, f.err)
		}
		trades = append(trades, t)
	}

	return trades, nil
}
