package client

import (
	"encoding/binary"

	"github.com/mwquote/tdx/proto"
)

// Request payload construction. The command prefixes are fixed byte
// templates recovered from captured sessions of the reference terminal; only
// the parameter tails vary. Everything multi-byte is little-endian, matching
// the rest of the wire format.

// helloRequests are the three handshake packets sent once per connection.
// Their responses carry no useful payload and are discarded.
func helloRequests() [][]byte {
	return [][]byte{
		{0x0c, 0x02, 0x18, 0x93, 0x00, 0x01, 0x03, 0x00, 0x03, 0x00, 0x0d, 0x00, 0x01},
		{0x0c, 0x02, 0x18, 0x94, 0x00, 0x01, 0x03, 0x00, 0x03, 0x00, 0x0d, 0x00, 0x02},
		{
			0x0c, 0x03, 0x18, 0x99, 0x00, 0x01, 0x20, 0x00, 0x20, 0x00, 0xdb, 0x0f, 0xd5,
			0xd0, 0xc9, 0xcc, 0xd6, 0xa4, 0xa8, 0xaf, 0x00, 0x00, 0x00, 0x8f, 0xc2, 0x25,
			0x40, 0x13, 0x00, 0x00, 0xd5, 0x00, 0xc9, 0xcc, 0xbd, 0xf0, 0xd7, 0xea, 0x00,
			0x00, 0x00, 0x02,
		},
	}
}

// appendCode appends an instrument code as the fixed 6-byte field the
// protocol uses, truncating or zero-padding as needed.
func appendCode(b []byte, code string) []byte {
	var field [6]byte
	copy(field[:], code)

	return append(b, field[:]...)
}

func stockCountRequest(market proto.Market) []byte {
	b := []byte{0x0c, 0x0c, 0x18, 0x6c, 0x00, 0x01, 0x08, 0x00, 0x08, 0x00, 0x4e, 0x04}
	b = append(b, byte(market))

	return append(b, 0x00, 0x75, 0xc7, 0x33, 0x01)
}

func stockListRequest(market proto.Market, start uint16) []byte {
	b := []byte{0x0c, 0x01, 0x18, 0x64, 0x01, 0x01, 0x06, 0x00, 0x06, 0x00, 0x50, 0x04}
	b = binary.LittleEndian.AppendUint16(b, uint16(market))

	return binary.LittleEndian.AppendUint16(b, start)
}

// StockRef identifies one instrument in a batch quote request.
type StockRef struct {
	Market proto.Market
	Code   string
}

func quotesRequest(stocks []StockRef) []byte {
	size := uint16(len(stocks)*7 + 12)
	b := make([]byte, 0, 24+len(stocks)*7)
	b = binary.LittleEndian.AppendUint16(b, 0x10c)
	b = binary.LittleEndian.AppendUint32(b, 0x02006320)
	b = binary.LittleEndian.AppendUint16(b, size)
	b = binary.LittleEndian.AppendUint16(b, size)
	b = binary.LittleEndian.AppendUint32(b, 0x5053e)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint16(b, 0)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(stocks)))
	for _, s := range stocks {
		b = append(b, byte(s.Market))
		b = appendCode(b, s.Code)
	}

	return b
}

func kLineRequest(category proto.KLineCategory, market proto.Market, code string, start, count uint16) []byte {
	b := make([]byte, 0, 38)
	b = binary.LittleEndian.AppendUint16(b, 0x10c)
	b = binary.LittleEndian.AppendUint32(b, 0x01016408)
	b = binary.LittleEndian.AppendUint16(b, 0x1c)
	b = binary.LittleEndian.AppendUint16(b, 0x1c)
	b = binary.LittleEndian.AppendUint16(b, 0x052d)
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)
	b = binary.LittleEndian.AppendUint16(b, uint16(category))
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, start)
	b = binary.LittleEndian.AppendUint16(b, count)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, 0)

	return binary.LittleEndian.AppendUint16(b, 0)
}

func minuteRequest(market proto.Market, code string) []byte {
	b := []byte{0x0c, 0x1b, 0x08, 0x00, 0x01, 0x01, 0x0e, 0x00, 0x0e, 0x00, 0x1d, 0x05}
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)

	return binary.LittleEndian.AppendUint32(b, 0)
}

func historyMinuteRequest(market proto.Market, code string, date uint32) []byte {
	b := []byte{0x0c, 0x01, 0x30, 0x00, 0x01, 0x01, 0x0d, 0x00, 0x0d, 0x00, 0xb4, 0x0f}
	b = binary.LittleEndian.AppendUint32(b, date)
	b = append(b, byte(market))

	return appendCode(b, code)
}

func transactionRequest(market proto.Market, code string, start, count uint16) []byte {
	b := []byte{0x0c, 0x17, 0x08, 0x01, 0x01, 0x01, 0x0e, 0x00, 0x0e, 0x00, 0xc5, 0x0f}
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)
	b = binary.LittleEndian.AppendUint16(b, start)

	return binary.LittleEndian.AppendUint16(b, count)
}

func historyTransactionRequest(market proto.Market, code string, start, count uint16, date uint32) []byte {
	b := []byte{0x0c, 0x01, 0x30, 0x01, 0x00, 0x01, 0x12, 0x00, 0x12, 0x00, 0xb5, 0x0f}
	b = binary.LittleEndian.AppendUint32(b, date)
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)
	b = binary.LittleEndian.AppendUint16(b, start)

	return binary.LittleEndian.AppendUint16(b, count)
}

func companyInfoEntriesRequest(market proto.Market, code string) []byte {
	b := []byte{0x0c, 0x0f, 0x10, 0x9b, 0x00, 0x01, 0x0e, 0x00, 0x0e, 0x00, 0xcf, 0x02}
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)

	return binary.LittleEndian.AppendUint32(b, 0)
}

func companyInfoContentRequest(market proto.Market, code, filename string, start, length uint32) []byte {
	b := []byte{0x0c, 0x07, 0x10, 0x9c, 0x00, 0x01, 0x68, 0x00, 0x68, 0x00, 0xd0, 0x02}
	b = binary.LittleEndian.AppendUint16(b, uint16(market))
	b = appendCode(b, code)
	b = binary.LittleEndian.AppendUint16(b, 0)
	var name [80]byte
	copy(name[:], filename)
	b = append(b, name[:]...)
	b = binary.LittleEndian.AppendUint32(b, start)
	b = binary.LittleEndian.AppendUint32(b, length)

	return binary.LittleEndian.AppendUint32(b, 0)
}

func xdxrRequest(market proto.Market, code string) []byte {
	b := []byte{0x0c, 0x1f, 0x18, 0x76, 0x00, 0x01, 0x0b, 0x00, 0x0b, 0x00, 0x0f, 0x00, 0x01, 0x00}
	b = append(b, byte(market))

	return appendCode(b, code)
}

func financeRequest(market proto.Market, code string) []byte {
	b := []byte{0x0c, 0x1f, 0x18, 0x76, 0x00, 0x01, 0x0b, 0x00, 0x0b, 0x00, 0x10, 0x00, 0x01, 0x00}
	b = append(b, byte(market))

	return appendCode(b, code)
}
