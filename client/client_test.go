package client

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mwquote/tdx/proto"
)

// frame wraps a payload in an uncompressed response frame.
func frame(payload []byte) []byte {
	b := make([]byte, 12, 16+len(payload))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(payload)))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(payload)))

	return append(b, payload...)
}

// scriptedServer accepts one connection and answers each expected request
// with the paired response payload, framed.
func scriptedServer(t *testing.T, exchanges [][2][]byte) net.Addr {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		for _, ex := range exchanges {
			buf := make([]byte, len(ex[0]))
			if _, err := io.ReadFull(conn, buf); err != nil {
				return
			}
			if _, err := conn.Write(frame(ex[1])); err != nil {
				return
			}
		}
	}()

	return ln.Addr()
}

func helloExchanges() [][2][]byte {
	var exchanges [][2][]byte
	for _, req := range helloRequests() {
		exchanges = append(exchanges, [2][]byte{req, {0x00}})
	}

	return exchanges
}

func TestDialAndStockCount(t *testing.T) {
	exchanges := append(helloExchanges(),
		[2][]byte{stockCountRequest(proto.MarketShanghai), {0xa1, 0x33}})
	addr := scriptedServer(t, exchanges)

	c, err := Dial(Config{Addr: addr.String(), Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	defer c.Close()

	count, err := c.GetStockCount(proto.MarketShanghai)
	require.NoError(t, err)
	require.Equal(t, uint16(13217), count)
}

func TestHeartbeat(t *testing.T) {
	exchanges := append(helloExchanges(),
		[2][]byte{stockCountRequest(proto.MarketShanghai), {0xa1, 0x33}})
	addr := scriptedServer(t, exchanges)

	c, err := Dial(Config{Addr: addr.String()})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Heartbeat())
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = Dial(Config{Addr: addr})
	require.Error(t, err)
}

func TestRoundTripServerGone(t *testing.T) {
	addr := scriptedServer(t, helloExchanges())

	c, err := Dial(Config{Addr: addr.String()})
	require.NoError(t, err)
	defer c.Close()

	// The script is exhausted; the next request sees the connection close.
	_, err = c.GetStockCount(proto.MarketShenzhen)
	require.Error(t, err)
}
