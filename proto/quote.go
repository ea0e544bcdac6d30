package proto

import (
	"fmt"

	"github.com/mwquote/tdx/bitstream"
)

// offsetPrice converts a base price and a signed offset varint to an absolute
// price. Quote prices are scaled by 100 on the wire.
func offsetPrice(base, offset int64) float64 {
	return float64(base+offset) / 100
}

// DecodeQuotes decodes a batch quote-snapshot response.
//
// Each record transmits one base price as a varint; every other price field
// is a signed varint offset against that base, never against a previously
// decoded field. The five bid/ask levels arrive as consecutive
// price-offset/price-offset/volume/volume groups in level order 1..5.
func DecodeQuotes(r *bitstream.Reader) ([]Quote, error) {
	f := newFieldReader(r)
	f.skip(2)
	count := f.uint16()
	if f.err != nil {
		return nil, f.err
	}

	quotes := make([]Quote, 0, count)
	for i := 0; i < int(count); i++ {
		var q Quote
		marketByte := f.uint8()
		code := f.bytes(6)
		q.Active1 = f.uint16()

		base := f.varint()
		q.Price = offsetPrice(base, 0)
		q.PreClose = offsetPrice(base, f.varint())
		q.Open = offsetPrice(base, f.varint())
		q.High = offsetPrice(base, f.varint())
		q.Low = offsetPrice(base, f.varint())
		q.ServerTime = f.varint()
		f.varint() // reserved
		q.Volume = f.varint()
		q.CurrentVolume = f.varint()
		q.Amount = f.float32()
		q.InnerVolume = f.varint()
		q.OuterVolume = f.varint()
		f.varint() // reserved
		f.varint() // reserved

		for lvl := 0; lvl < 5; lvl++ {
			q.Levels[lvl].BuyPrice = offsetPrice(base, f.varint())
			q.Levels[lvl].SellPrice = offsetPrice(base, f.varint())
			q.Levels[lvl].BuyVolume = f.varint()
			q.Levels[lvl].SellVolume = f.varint()
		}

		f.uint16() // reserved
		f.varint() // reserved
		f.varint() // reserved
		f.varint() // reserved
		f.varint() // reserved
		q.ChangeRate = float64(f.int16()) / 100
		q.Active2 = f.uint16()

		if f.err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, f.err)
		}
		market, err := ParseMarket(marketByte)
		if err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, err)
		}
		q.Market = market
		q.Code = string(code)
		quotes = append(quotes, q)
	}

	return quotes, nil
}
