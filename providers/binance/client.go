package binance

import (
	"context"
	"fmt"
	"strings"

	"github.com/coder/websocket"
	"github.com/yanun0323/logs"
)

// DefaultEndpoint is the Binance combined-stream base URL.
const DefaultEndpoint = "wss://stream.binance.com:9443/stream"

// readLimit caps a single frame; depth diffs and trades stay far below it.
const readLimit = 1 << 20

// UpdateSpeed selects the diff-depth snapshot interval.
type UpdateSpeed int

const (
	UpdateSpeedSecond     UpdateSpeed = 1000
	UpdateSpeedDeciSecond UpdateSpeed = 100
)

// Config describes which streams a Client consumes.
type Config struct {
	// Endpoint overrides DefaultEndpoint, mainly for tests.
	Endpoint string
	// Symbols to stream, exchange notation ("BTCUSDT").
	Symbols []string
	// Speed of the diff-depth stream.
	Speed UpdateSpeed
	// Trades enables the trade stream alongside depth.
	Trades bool
}

// Client consumes Binance websocket streams and forwards raw payloads to a
// channel. Parsing happens downstream so a slow consumer never stalls the
// read loop more than its channel buffer allows.
type Client struct {
	cfg  Config
	conn *websocket.Conn
}

// NewClient creates a new Client instance.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Speed == 0 {
		cfg.Speed = UpdateSpeedDeciSecond
	}
	return &Client{cfg: cfg}
}

// streamURL builds the combined-stream URL for the configured symbols.
// Stream names require lowercase symbols.
func (c *Client) streamURL() string {
	var streams []string
	for _, symbol := range c.cfg.Symbols {
		s := strings.ToLower(symbol)
		streams = append(streams, fmt.Sprintf("%s@depth@%dms", s, c.cfg.Speed))
		if c.cfg.Trades {
			streams = append(streams, s+"@trade")
		}
	}
	return c.cfg.Endpoint + "?streams=" + strings.Join(streams, "/")
}

// Stream connects and forwards raw payloads to out until the context ends or
// the connection drops. The channel is closed on return.
func (c *Client) Stream(ctx context.Context, out chan<- []byte) error {
	url := c.streamURL()
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", url, err)
	}
	conn.SetReadLimit(readLimit)
	c.conn = conn

	go func() {
		defer close(out)
		defer conn.Close(websocket.StatusNormalClosure, "done")

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logs.Warnf("stream read failed: %s", err)
				}
				return
			}
			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
