package proto

import (
	"fmt"
	"time"

	"github.com/mwquote/tdx/bitstream"
)

// XDXRCategory tags a corporate-action event. The tag selects how the four
// raw floats of the event payload are labeled.
type XDXRCategory uint8

const (
	XDXRDividend               XDXRCategory = 1  // 除权除息
	XDXRAllotmentListing       XDXRCategory = 2  // 送配股上市
	XDXRNonTradableListing     XDXRCategory = 3  // 非流通股上市
	XDXRUnknownCapitalChange   XDXRCategory = 4  // 未知股本变动
	XDXRCapitalChange          XDXRCategory = 5  // 股本变动
	XDXRAdditionalIssue        XDXRCategory = 6  // 增发新股
	XDXRShareRepurchase        XDXRCategory = 7  // 股份回购
	XDXRAdditionalIssueListing XDXRCategory = 8  // 增发新股上市
	XDXRTransferListing        XDXRCategory = 9  // 转配股上市
	XDXRConvertibleBondListing XDXRCategory = 10 // 可转债上市
	XDXRShareContraction       XDXRCategory = 11 // 扩缩股
	XDXRNonTradableContraction XDXRCategory = 12 // 非流通股缩股
	XDXRCallWarrant            XDXRCategory = 13 // 送认购权证
	XDXRPutWarrant             XDXRCategory = 14 // 送认沽权证
)

// XDXRPayload is the closed set of corporate-action payload variants. All
// variants share one wire layout, four 32-bit floats; the category tag
// decides which variant the floats populate.
type XDXRPayload interface {
	xdxrPayload()
}

// DividendPayload carries cash/stock dividend terms (XDXRDividend).
type DividendPayload struct {
	CashDividend    float64
	AllotmentPrice  float64
	BonusShares     float64
	AllotmentShares float64
}

// ContractionPayload carries share expansion/contraction terms
// (XDXRShareContraction, XDXRNonTradableContraction).
type ContractionPayload struct {
	Reserved1 float64
	Reserved2 float64
	Shrink    float64
	Reserved3 float64
}

// WarrantPayload carries warrant issuance terms (XDXRCallWarrant,
// XDXRPutWarrant).
type WarrantPayload struct {
	StrikePrice float64
	Reserved1   float64
	Units       float64
	Reserved2   float64
}

// ShareStructurePayload is the pre/post share-structure snapshot used by
// every remaining category, including tags with no known mapping.
type ShareStructurePayload struct {
	PreFloat  float64
	PreTotal  float64
	PostFloat float64
	PostTotal float64
}

func (DividendPayload) xdxrPayload()       {}
func (ContractionPayload) xdxrPayload()    {}
func (WarrantPayload) xdxrPayload()        {}
func (ShareStructurePayload) xdxrPayload() {}

// XDXR is one corporate-action event.
type XDXR struct {
	Date     time.Time
	Category XDXRCategory
	Payload  XDXRPayload
}

// DecodeXDXR decodes a corporate-action response. A payload too short to
// carry the fixed preamble means the instrument has no events, not an error.
//
// Unknown category tags are not an error either: the server adds categories
// over time, and the share-structure labeling is the documented default.
func DecodeXDXR(r *bitstream.Reader) ([]XDXR, error) {
	if r.Len() < 11 {
		return nil, nil
	}

	f := newFieldReader(r)
	f.uint8() // market echo, unused
	f.skip(2)
	f.bytes(6) // instrument code echo
	count := f.uint16()
	if f.err != nil {
		return nil, f.err
	}

	events := make([]XDXR, 0, count)
	for i := 0; i < int(count); i++ {
		var ev XDXR
		f.skip(8) // reserved
		ev.Date = f.barTime(KDay)
		ev.Category = XDXRCategory(f.uint8())

		v1 := f.float32()
		v2 := f.float32()
		v3 := f.float32()
		v4 := f.float32()
		if f.err != nil {
			return nil, fmt.Errorf("xdxr event %d: %w", i, f.err)
		}

		switch ev.Category {
		case XDXRDividend:
			ev.Payload = DividendPayload{CashDividend: v1, AllotmentPrice: v2, BonusShares: v3, AllotmentShares: v4}
		case XDXRShareContraction, XDXRNonTradableContraction:
			ev.Payload = ContractionPayload{Reserved1: v1, Reserved2: v2, Shrink: v3, Reserved3: v4}
		case XDXRCallWarrant, XDXRPutWarrant:
			ev.Payload = WarrantPayload{StrikePrice: v1, Reserved1: v2, Units: v3, Reserved2: v4}
		default:
			ev.Payload = ShareStructurePayload{PreFloat: v1, PreTotal: v2, PostFloat: v3, PostTotal: v4}
		}
		events = append(events, ev)
	}

	return events, nil
}
