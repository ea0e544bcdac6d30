package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeStockCount(t *testing.T) {
	p := &payloadBuilder{}
	p.u16(13217)

	count, err := DecodeStockCount(p.reader())
	require.NoError(t, err)
	require.Equal(t, uint16(13217), count)
}

func TestDecodeStockList(t *testing.T) {
	p := &payloadBuilder{}
	p.u16(2)

	p.fixedStr("600000", 6)
	p.u16(100)
	p.raw(0xc6, 0xd6, 0xb7, 0xa2, 0xd2, 0xf8, 0xd0, 0xd0) // 浦发银行 in GBK
	p.raw(0, 0, 0, 0)
	p.u8(2)
	p.f32(7.32)
	p.raw(0, 0, 0, 0)

	p.fixedStr("000001", 6)
	p.u16(100)
	p.fixedStr("PAB", 8)
	p.raw(0, 0, 0, 0)
	p.u8(2)
	p.f32(10.55)
	p.raw(0, 0, 0, 0)

	stocks, err := DecodeStockList(p.reader())
	require.NoError(t, err)
	require.Len(t, stocks, 2)

	require.Equal(t, "600000", stocks[0].Code)
	require.Equal(t, uint16(100), stocks[0].VolUnit)
	require.Equal(t, "浦发银行", stocks[0].Name)
	require.Equal(t, uint8(2), stocks[0].DecimalPoint)
	require.InDelta(t, 7.32, stocks[0].PreClose, 1e-6)

	require.Equal(t, "000001", stocks[1].Code)
	require.Equal(t, "PAB", stocks[1].Name)
	require.InDelta(t, 10.55, stocks[1].PreClose, 1e-6)
}

func TestDecodeStockList_Truncated(t *testing.T) {
	p := &payloadBuilder{}
	p.u16(1)
	p.fixedStr("600000", 6)
	p.u16(100)
	// Record ends mid-name.
	p.raw(0xc6, 0xd6)

	_, err := DecodeStockList(p.reader())
	require.Error(t, err)
}
