package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCompanyInfoEntries(t *testing.T) {
	p := &payloadBuilder{}
	p.u16(2)
	p.fixedStr("Company Overview", 64)
	p.fixedStr("600000.txt", 80)
	p.u32(0)
	p.u32(12000)
	p.fixedStr("Shareholders", 64)
	p.fixedStr("600000.txt", 80)
	p.u32(12000)
	p.u32(8400)

	entries, err := DecodeCompanyInfoEntries(p.reader())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "Company Overview", entries[0].Name)
	require.Equal(t, "600000.txt", entries[0].Filename)
	require.Equal(t, uint32(0), entries[0].Start)
	require.Equal(t, uint32(12000), entries[0].Length)

	require.Equal(t, "Shareholders", entries[1].Name)
	require.Equal(t, uint32(12000), entries[1].Start)
	require.Equal(t, uint32(8400), entries[1].Length)
}

func TestDecodeCompanyInfoEntries_Truncated(t *testing.T) {
	p := &payloadBuilder{}
	p.u16(1)
	p.fixedStr("Company Overview", 64)
	p.fixedStr("600000.txt", 40)

	_, err := DecodeCompanyInfoEntries(p.reader())
	require.Error(t, err)
}

func TestDecodeCompanyInfoContent(t *testing.T) {
	gbk := []byte{0xc6, 0xd6, 0xb7, 0xa2, 0xd2, 0xf8, 0xd0, 0xd0} // 浦发银行

	p := &payloadBuilder{}
	p.raw(make([]byte, 10)...) // request echo
	p.u16(uint16(len(gbk)))
	p.raw(gbk...)

	text, err := DecodeCompanyInfoContent(p.reader())
	require.NoError(t, err)
	require.Equal(t, "浦发银行", text)
}

func TestDecodeCompanyInfoContent_LengthPastEnd(t *testing.T) {
	p := &payloadBuilder{}
	p.raw(make([]byte, 10)...)
	p.u16(500)
	p.raw(0x01, 0x02)

	_, err := DecodeCompanyInfoContent(p.reader())
	require.Error(t, err)
}
