// Package tdx is a client for the proprietary binary quotation protocol of
// TDX-compatible securities servers.
//
// The protocol is a length-prefixed request/response exchange over one TCP
// connection: every request is a fixed byte template, every response a
// 16-byte frame header followed by an optionally zlib-compressed payload of
// packed little-endian records.
//
// # Package structure
//
// The decoding engine is layered bottom-up:
//
//   - bitstream: positional reader with fixed-width scalars, the protocol's
//     variable-length signed integer, and GBK string fields
//   - encoding: the three packed date/time schemes
//   - transport: request/response framing and payload inflation
//   - proto: record decoders (stock list, quotes, K-lines, ticks, corporate
//     actions, finance, company filings)
//   - client: the session facade tying the layers to a live connection
//
// Alongside the network path, tdxfile reads the terminal's local bar files
// and archive stores downloaded series in a compact compressed form.
//
// # Basic usage
//
//	c, err := tdx.Dial("119.147.212.81:7709")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	quotes, err := c.GetQuotes([]client.StockRef{
//	    {Market: proto.MarketShanghai, Code: "600000"},
//	})
package tdx

import "github.com/mwquote/tdx/client"

// Dial opens a session with default timeouts and no logging. Use
// client.Dial with a client.Config for full control.
func Dial(addr string) (*client.Client, error) {
	return client.Dial(client.Config{Addr: addr})
}
