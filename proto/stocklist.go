package proto

import (
	"fmt"

	"github.com/mwquote/tdx/bitstream"
)

// DecodeStockCount decodes the response to a stock-count request: a single
// 16-bit total for the queried market.
func DecodeStockCount(r *bitstream.Reader) (uint16, error) {
	return r.Uint16()
}

// DecodeStockList decodes one page of the listed-security table.
//
// Per entry: 6-byte ASCII code, uint16 volume unit, 8-byte zero-padded GBK
// name, 4 reserved bytes, uint8 decimal point, float32 previous close,
// 4 reserved bytes.
func DecodeStockList(r *bitstream.Reader) ([]Stock, error) {
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}

	stocks := make([]Stock, 0, count)
	for i := 0; i < int(count); i++ {
		var s Stock
		code, err := r.ReadBytes(6)
		if err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		s.Code = string(code)
		if s.VolUnit, err = r.Uint16(); err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		if s.Name, err = r.FixedString(8); err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		if err = r.Skip(4); err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		if s.DecimalPoint, err = r.Uint8(); err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		preClose, err := r.Float32()
		if err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		s.PreClose = float64(preClose)
		if err = r.Skip(4); err != nil {
			return nil, fmt.Errorf("stock %d: %w", i, err)
		}
		stocks = append(stocks, s)
	}

	return stocks, nil
}
