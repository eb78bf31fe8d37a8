// Package sim provides a random-walk candle generator — a drop-in
// replacement for the WebSocket feed, useful for offline runs and demos.
package sim

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Config holds configuration for the simulated candle feed.
type Config struct {
	Symbol     string
	StartPrice float64       // defaults to 100 if zero
	Step       float64       // max per-bar drift fraction, defaults to 0.005
	Interval   time.Duration // bar interval, defaults to 1s (sim time == wall time)
	Seed       int64         // 0 seeds from the clock
}

func (c *Config) defaults() {
	if c.StartPrice == 0 {
		c.StartPrice = 100
	}
	if c.Step == 0 {
		c.Step = 0.005
	}
	if c.Interval == 0 {
		c.Interval = time.Second
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Feed generates a random-walk candle series.
type Feed struct {
	cfg Config
	rng *rand.Rand
}

// New creates a simulated feed.
func New(cfg Config) *Feed {
	cfg.defaults()
	return &Feed{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Start emits one candle per interval into candleCh until ctx is cancelled.
func (f *Feed) Start(ctx context.Context, candleCh chan<- model.Candle) error {
	log.Printf("[sim] feeding %s random walk from %.2f every %s",
		f.cfg.Symbol, f.cfg.StartPrice, f.cfg.Interval)

	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	price := f.cfg.StartPrice
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			candle, next := f.nextCandle(price, now.UTC())
			price = next
			select {
			case candleCh <- candle:
			default:
				log.Println("[sim] candleCh full, dropping candle")
			}
		}
	}
}

// nextCandle advances the walk one bar and returns the bar plus the new price.
func (f *Feed) nextCandle(price float64, ts time.Time) (model.Candle, float64) {
	drift := (f.rng.Float64()*2 - 1) * f.cfg.Step * price
	next := price + drift

	high, low := price, next
	if next > price {
		high, low = next, price
	}
	// A little wick beyond the open/close range
	wick := f.rng.Float64() * f.cfg.Step * price / 2
	return model.Candle{
		Symbol: f.cfg.Symbol,
		TS:     ts,
		Open:   price,
		High:   high + wick,
		Low:    low - wick,
		Close:  next,
		Volume: 1 + f.rng.Float64()*100,
	}, next
}
