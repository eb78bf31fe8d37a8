// Package ws provides a WebSocket ingest client for Binance-style kline
// streams. Only closed candles are emitted downstream; forming updates are
// skipped so strategies always evaluate finalized bars.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Config holds configuration for the kline WS ingest.
type Config struct {
	// BaseURL of the stream endpoint, e.g. "wss://stream.binance.com:9443/ws".
	BaseURL  string
	Symbol   string // e.g. "BTCUSDT"
	Interval string // e.g. "1m"

	// ReconnectDelay is the initial delay before reconnection attempts.
	// Defaults to 2 seconds if zero.
	ReconnectDelay time.Duration

	// MaxReconnectDelay caps the exponential backoff. Defaults to 30s.
	MaxReconnectDelay time.Duration
}

func (c *Config) defaults() {
	if c.ReconnectDelay == 0 {
		c.ReconnectDelay = 2 * time.Second
	}
	if c.MaxReconnectDelay == 0 {
		c.MaxReconnectDelay = 30 * time.Second
	}
}

// Ingest connects to the kline stream and pushes closed candles into candleCh.
type Ingest struct {
	cfg Config

	// Optional hooks for metrics wiring.
	OnReconnect func()
	OnDrop      func()
	OnConnected func(bool)
}

// New creates a new Ingest.
func New(cfg Config) (*Ingest, error) {
	cfg.defaults()
	if cfg.BaseURL == "" || cfg.Symbol == "" || cfg.Interval == "" {
		return nil, fmt.Errorf("ws ingest: base URL, symbol and interval are required")
	}
	return &Ingest{cfg: cfg}, nil
}

// StreamURL returns the full stream URL for the configured symbol/interval.
func (ing *Ingest) StreamURL() string {
	return fmt.Sprintf("%s/%s@kline_%s", ing.cfg.BaseURL, strings.ToLower(ing.cfg.Symbol), ing.cfg.Interval)
}

// Start connects to the stream and pushes candles into candleCh.
// Blocks until ctx is cancelled. Reconnects automatically on disconnect.
func (ing *Ingest) Start(ctx context.Context, candleCh chan<- model.Candle) error {
	delay := ing.cfg.ReconnectDelay

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := ing.runOnce(ctx, candleCh)
		if ing.OnConnected != nil {
			ing.OnConnected(false)
		}
		if err == nil {
			// Context cancelled cleanly
			return nil
		}

		log.Printf("[ws] disconnected (%v), reconnecting in %s...", err, delay)
		if ing.OnReconnect != nil {
			ing.OnReconnect()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		// Exponential backoff
		delay *= 2
		if delay > ing.cfg.MaxReconnectDelay {
			delay = ing.cfg.MaxReconnectDelay
		}
	}
}

// runOnce makes a single connection attempt and reads until disconnect or ctx cancel.
func (ing *Ingest) runOnce(ctx context.Context, candleCh chan<- model.Candle) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, ing.StreamURL(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("[ws] connected to %s", ing.StreamURL())
	if ing.OnConnected != nil {
		ing.OnConnected(true)
	}

	// Async context watcher — closes the connection when ctx is cancelled.
	go func() {
		<-ctx.Done()
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"))
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		candle, closed, err := ParseKline(raw)
		if err != nil {
			log.Printf("[ws] parse error: %v", err)
			continue
		}
		if !closed {
			continue // forming candle, wait for the close
		}

		select {
		case candleCh <- candle:
		default:
			log.Println("[ws] candleCh full, dropping candle")
			if ing.OnDrop != nil {
				ing.OnDrop()
			}
		}
	}
}

// klineEvent mirrors the Binance kline stream payload. Prices arrive as
// strings on the wire.
type klineEvent struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	Kline     struct {
		OpenTime int64  `json:"t"` // epoch milliseconds
		Open     string `json:"o"`
		High     string `json:"h"`
		Low      string `json:"l"`
		Close    string `json:"c"`
		Volume   string `json:"v"`
		Closed   bool   `json:"x"`
	} `json:"k"`
}

// ParseKline converts a raw kline stream message into a candle.
// The second return value reports whether the candle is closed.
func ParseKline(raw []byte) (model.Candle, bool, error) {
	var ev klineEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return model.Candle{}, false, fmt.Errorf("unmarshal kline: %w", err)
	}
	if ev.EventType != "kline" {
		return model.Candle{}, false, fmt.Errorf("unexpected event type %q", ev.EventType)
	}
	if ev.Symbol == "" {
		return model.Candle{}, false, fmt.Errorf("missing symbol")
	}

	open, err := strconv.ParseFloat(ev.Kline.Open, 64)
	if err != nil {
		return model.Candle{}, false, fmt.Errorf("bad open %q: %w", ev.Kline.Open, err)
	}
	high, err := strconv.ParseFloat(ev.Kline.High, 64)
	if err != nil {
		return model.Candle{}, false, fmt.Errorf("bad high %q: %w", ev.Kline.High, err)
	}
	low, err := strconv.ParseFloat(ev.Kline.Low, 64)
	if err != nil {
		return model.Candle{}, false, fmt.Errorf("bad low %q: %w", ev.Kline.Low, err)
	}
	closeP, err := strconv.ParseFloat(ev.Kline.Close, 64)
	if err != nil {
		return model.Candle{}, false, fmt.Errorf("bad close %q: %w", ev.Kline.Close, err)
	}
	volume, err := strconv.ParseFloat(ev.Kline.Volume, 64)
	if err != nil {
		return model.Candle{}, false, fmt.Errorf("bad volume %q: %w", ev.Kline.Volume, err)
	}

	return model.Candle{
		Symbol: ev.Symbol,
		TS:     time.Unix(0, ev.Kline.OpenTime*int64(time.Millisecond)).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closeP,
		Volume: volume,
	}, ev.Kline.Closed, nil
}
