// Package client is the session facade of the tdx module: it owns the TCP
// connection to a quotation server, builds the fixed request payloads, runs
// each blocking round trip through the transport framer, and dispatches the
// resulting payload reader to the matching record decoder.
//
// One request is in flight per session at a time; the protocol has no
// request-ID multiplexing, so concurrent callers must either serialize on one
// Client or open independent sessions.
package client

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/mwquote/tdx/bitstream"
	"github.com/mwquote/tdx/internal/hash"
	"github.com/mwquote/tdx/proto"
	"github.com/mwquote/tdx/transport"
)

const (
	defaultDialTimeout    = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Config configures one quotation-server session.
type Config struct {
	// Addr is the server address in host:port form.
	Addr string
	// DialTimeout bounds connection establishment. Defaults to 5s.
	DialTimeout time.Duration
	// RequestTimeout is applied as a socket deadline before every round
	// trip; the transport layer itself never enforces timeouts. Defaults to
	// 10s. Zero after defaulting is not possible; set to a negative value to
	// disable deadlines.
	RequestTimeout time.Duration
	// Logger receives structured request/response logs. Defaults to
	// zap.NewNop().
	Logger *zap.Logger
}

// Client is one live session. Methods are blocking round trips; Client is
// not safe for concurrent use.
type Client struct {
	conn    net.Conn
	log     *zap.Logger
	timeout time.Duration
}

// Dial connects to the server and performs the protocol handshake: three
// fixed hello packets whose responses are read, framed, and discarded.
func Dial(cfg Config) (*Client, error) {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	conn, err := net.DialTimeout("tcp", cfg.Addr, cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Addr, err)
	}

	c := &Client{
		conn:    conn,
		log:     cfg.Logger.With(zap.String("server", cfg.Addr)),
		timeout: cfg.RequestTimeout,
	}

	for i, req := range helloRequests() {
		if _, err := c.roundTrip(fmt.Sprintf("hello-%d", i+1), req); err != nil {
			conn.Close()

			return nil, err
		}
	}
	c.log.Info("session established")

	return c, nil
}

// Close tears down the session.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip applies the per-request deadline, runs one framed exchange, and
// logs the outcome.
func (c *Client) roundTrip(op string, request []byte) (*bitstream.Reader, error) {
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, fmt.Errorf("%s: set deadline: %w", op, err)
		}
	}

	r, err := transport.RoundTrip(c.conn, request)
	if err != nil {
		c.log.Warn("round trip failed", zap.String("op", op), zap.Error(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("round trip complete",
		zap.String("op", op),
		zap.Int("request_bytes", len(request)),
		zap.Int("payload_bytes", r.Len()),
		zap.Uint64("payload_hash", hash.Bytes(r.Bytes())),
	)

	return r, nil
}

// GetStockCount returns the number of listed securities on a market.
func (c *Client) GetStockCount(market proto.Market) (uint16, error) {
	r, err := c.roundTrip("stock-count", stockCountRequest(market))
	if err != nil {
		return 0, err
	}

	return proto.DecodeStockCount(r)
}

// GetStockList returns one page of the listed-security table starting at the
// given index.
func (c *Client) GetStockList(market proto.Market, start uint16) ([]proto.Stock, error) {
	r, err := c.roundTrip("stock-list", stockListRequest(market, start))
	if err != nil {
		return nil, err
	}

	return proto.DecodeStockList(r)
}

// GetQuotes returns current snapshots for up to a server page of
// instruments.
func (c *Client) GetQuotes(stocks []StockRef) ([]proto.Quote, error) {
	r, err := c.roundTrip("quotes", quotesRequest(stocks))
	if err != nil {
		return nil, err
	}

	return proto.DecodeQuotes(r)
}

// GetKLines returns a page of bars for an instrument, newest page at
// start 0.
func (c *Client) GetKLines(category proto.KLineCategory, market proto.Market, code string, start, count uint16) ([]proto.KLine, error) {
	r, err := c.roundTrip("klines", kLineRequest(category, market, code, start, count))
	if err != nil {
		return nil, err
	}

	return proto.DecodeKLines(r, category)
}

// GetMinuteTicks returns the minute price curve of the current session.
func (c *Client) GetMinuteTicks(market proto.Market, code string) ([]proto.MinuteTick, error) {
	r, err := c.roundTrip("minute-ticks", minuteRequest(market, code))
	if err != nil {
		return nil, err
	}

	return proto.DecodeMinuteTicks(r)
}

// GetHistoryMinuteTicks returns the minute price curve of a past session.
// The date is decimal-packed YYYYMMDD.
func (c *Client) GetHistoryMinuteTicks(market proto.Market, code string, date uint32) ([]proto.MinuteTick, error) {
	r, err := c.roundTrip("history-minute-ticks", historyMinuteRequest(market, code, date))
	if err != nil {
		return nil, err
	}

	return proto.DecodeHistoryMinuteTicks(r)
}

// GetTransactions returns a page of trade ticks of the current session.
func (c *Client) GetTransactions(market proto.Market, code string, start, count uint16) ([]proto.Transaction, error) {
	r, err := c.roundTrip("transactions", transactionRequest(market, code, start, count))
	if err != nil {
		return nil, err
	}

	return proto.DecodeTransactions(r)
}

// GetHistoryTransactions returns a page of trade ticks of a past session.
// The date is decimal-packed YYYYMMDD.
func (c *Client) GetHistoryTransactions(market proto.Market, code string, start, count uint16, date uint32) ([]proto.Transaction, error) {
	r, err := c.roundTrip("history-transactions", historyTransactionRequest(market, code, start, count, date))
	if err != nil {
		return nil, err
	}

	return proto.DecodeHistoryTransactions(r)
}

// GetXDXR returns the corporate-action history of an instrument.
func (c *Client) GetXDXR(market proto.Market, code string) ([]proto.XDXR, error) {
	r, err := c.roundTrip("xdxr", xdxrRequest(market, code))
	if err != nil {
		return nil, err
	}

	return proto.DecodeXDXR(r)
}

// GetFinance returns the fundamental snapshot of an instrument.
func (c *Client) GetFinance(market proto.Market, code string) (proto.FinanceInfo, error) {
	r, err := c.roundTrip("finance", financeRequest(market, code))
	if err != nil {
		return proto.FinanceInfo{}, err
	}

	return proto.DecodeFinance(r)
}

// GetCompanyInfoEntries returns the filing index of an instrument.
func (c *Client) GetCompanyInfoEntries(market proto.Market, code string) ([]proto.CompanyInfoEntry, error) {
	r, err := c.roundTrip("company-info-entries", companyInfoEntriesRequest(market, code))
	if err != nil {
		return nil, err
	}

	return proto.DecodeCompanyInfoEntries(r)
}

// GetCompanyInfoContent returns one filing excerpt addressed by the
// offset/length pair of its index entry.
func (c *Client) GetCompanyInfoContent(market proto.Market, code string, entry proto.CompanyInfoEntry) (string, error) {
	r, err := c.roundTrip("company-info-content",
		companyInfoContentRequest(market, code, entry.Filename, entry.Start, entry.Length))
	if err != nil {
		return "", err
	}

	return proto.DecodeCompanyInfoContent(r)
}

// Heartbeat keeps an idle session alive. The server treats any request as
// activity; a stock-count query is the cheapest, and its result is
// discarded.
func (c *Client) Heartbeat() error {
	_, err := c.GetStockCount(proto.MarketShanghai)

	return err
}
