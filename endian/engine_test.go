package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	pattern := []byte{0x01, 0x02, 0x03, 0x04}

	require.Equal(t, uint32(0x04030201), GetLittleEndianEngine().Uint32(pattern))
	require.Equal(t, uint32(0x01020304), GetBigEndianEngine().Uint32(pattern))
}

func TestEngineAppend(t *testing.T) {
	le := GetLittleEndianEngine().AppendUint16(nil, 0x1234)
	require.Equal(t, []byte{0x34, 0x12}, le)

	be := GetBigEndianEngine().AppendUint16(nil, 0x1234)
	require.Equal(t, []byte{0x12, 0x34}, be)
}
