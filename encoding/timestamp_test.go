package encoding

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/endian"
	"github.com/mwquote/tdx/errs"
)

func littleReader(data []byte) *bitstream.Reader {
	return bitstream.NewReader(data, endian.GetLittleEndianEngine())
}

func TestReadIntradayTime(t *testing.T) {
	// Year 2024 is offset 20 in the upper 5 bits, March 15 packs to 315 in
	// the low 11 bits; 570 minutes past midnight is 09:30.
	zipday := uint16(20<<11 | 315)
	data := binary.LittleEndian.AppendUint16(nil, zipday)
	data = binary.LittleEndian.AppendUint16(data, 570)

	got, err := ReadIntradayTime(littleReader(data))
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), got)
}

func TestReadIntradayTime_Epoch(t *testing.T) {
	// Zero year offset is 2004.
	data := binary.LittleEndian.AppendUint16(nil, uint16(101)) // Jan 1
	data = binary.LittleEndian.AppendUint16(data, 0)

	got, err := ReadIntradayTime(littleReader(data))
	require.NoError(t, err)
	require.Equal(t, time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestReadDailyTime(t *testing.T) {
	data := binary.LittleEndian.AppendUint32(nil, 20240315)

	got, err := ReadDailyTime(littleReader(data))
	require.NoError(t, err)
	// Daily bars carry no time of day; it is fixed at the 15:00 close.
	require.Equal(t, time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC), got)
}

func TestReadTimeOfDay(t *testing.T) {
	data := binary.LittleEndian.AppendUint16(nil, 570)

	got, err := ReadTimeOfDay(littleReader(data))
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, got)
	require.Equal(t, "09:30", got.String())
}

func TestReadTimes_ShortBuffer(t *testing.T) {
	_, err := ReadIntradayTime(littleReader([]byte{0x01, 0x02}))
	require.ErrorIs(t, err, errs.ErrShortBuffer)

	_, err = ReadDailyTime(littleReader([]byte{0x01, 0x02}))
	require.ErrorIs(t, err, errs.ErrShortBuffer)

	_, err = ReadTimeOfDay(littleReader([]byte{0x01}))
	require.ErrorIs(t, err, errs.ErrShortBuffer)
}
