// Package proto decodes TDX response payloads into typed market-data
// records.
//
// Each Decode function is a pure function of a positioned bitstream.Reader
// and its parameters; any per-sequence state (the K-line carry, the tick
// price accumulator) is local to one call and discarded afterward. Decoders
// read a 16-bit element count and loop, surfacing errs.ErrShortBuffer for
// payloads shorter than the count demands. The single deliberate exception is
// the K-line decoder, which recovers one short-buffer condition to resolve
// the index/equity shape ambiguity.
package proto

import (
	"fmt"
	"time"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/encoding"
	"github.com/mwquote/tdx/errs"
)

// Market identifies an exchange, one byte on the wire.
type Market uint8

const (
	MarketShenzhen Market = 0
	MarketShanghai Market = 1
)

// ParseMarket maps a wire byte to a Market. There is no safe default for an
// unmapped value, so it surfaces as a decode error.
func ParseMarket(b uint8) (Market, error) {
	switch Market(b) {
	case MarketShenzhen, MarketShanghai:
		return Market(b), nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownMarket, b)
	}
}

func (m Market) String() string {
	switch m {
	case MarketShenzhen:
		return "SZ"
	case MarketShanghai:
		return "SH"
	default:
		return fmt.Sprintf("Market(%d)", uint8(m))
	}
}

// KLineCategory selects a bar granularity and, with it, which packed
// timestamp encoding a bar carries.
type KLineCategory uint16

const (
	K5 KLineCategory = iota
	K15
	K30
	K60
	KDaily
	KWeek
	KMonth
	PerMinute
	K1
	KDay
	KQuarter
	KYear
)

// Intraday reports whether bars of this category carry the two-word intraday
// timestamp. Everything at daily granularity or coarser uses the one-word
// YYYYMMDD form.
func (c KLineCategory) Intraday() bool {
	return c < KDaily || c == PerMinute || c == K1
}

// readBarTime decodes a bar timestamp with the scheme the category dictates.
// The scheme is never chosen by sniffing data.
func readBarTime(r *bitstream.Reader, c KLineCategory) (time.Time, error) {
	if c.Intraday() {
		return encoding.ReadIntradayTime(r)
	}

	return encoding.ReadDailyTime(r)
}

// Stock is one entry of the listed-security table.
type Stock struct {
	Code         string
	VolUnit      uint16
	Name         string
	DecimalPoint uint8
	PreClose     float64
}

// Level is one bid/ask price level of a quote snapshot.
type Level struct {
	BuyPrice   float64
	SellPrice  float64
	BuyVolume  int64
	SellVolume int64
}

// Quote is a full snapshot for one instrument. All price fields arrive on the
// wire as signed offsets from one base price transmitted first; decoded
// values here are absolute.
type Quote struct {
	Market        Market
	Code          string
	Active1       uint16
	Price         float64
	PreClose      float64
	Open          float64
	High          float64
	Low           float64
	ServerTime    int64 // raw packed value; formatting is the caller's concern
	Volume        int64
	CurrentVolume int64
	Amount        float64
	InnerVolume   int64
	OuterVolume   int64
	Levels        [5]Level
	ChangeRate    float64
	Active2       uint16
}

// Bar is one OHLCV interval record, shared by the network K-line decoder and
// the local bar-file readers.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Amount float64
	Volume float64
}

// KLine is a network bar. Advancing/Declining are the index-only issue
// counters; they stay zero for equity-shaped responses.
type KLine struct {
	Bar
	Advancing uint16
	Declining uint16
}

// MinuteTick is one point of the intraday minute curve.
type MinuteTick struct {
	Price  float64
	Volume int64
}

// Transaction is one trade tick.
type Transaction struct {
	Time      encoding.TimeOfDay
	Price     float64
	Volume    int64
	Count     int64
	BuyOrSell int64
}

// CompanyInfoEntry is one document of the company filing index.
type CompanyInfoEntry struct {
	Name     string
	Filename string
	Start    uint32
	Length   uint32
}
