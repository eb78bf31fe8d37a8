package model

import (
	"encoding/json"
	"time"
)

// Candle represents one OHLCV bar for a single symbol and interval.
// Prices are float64 in quote currency (e.g. USDT).
type Candle struct {
	Symbol string    `json:"symbol"`
	TS     time.Time `json:"ts"` // bar open time (UTC, interval-aligned)
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Key returns a unique key for this candle's instrument.
func (c *Candle) Key() string {
	return c.Symbol
}

// JSON returns the JSON-encoded candle (ignoring errors for hot-path usage).
func (c *Candle) JSON() []byte {
	b, _ := json.Marshal(c)
	return b
}

// Field extracts the named price field from the candle.
func (c *Candle) Field(f PriceField) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	default:
		return c.Close
	}
}
