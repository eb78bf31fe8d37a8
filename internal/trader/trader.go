// Package trader provides the evaluation loop that owns trend strategies.
//
// A Trader holds one long-lived strategy instance per configured rule and
// asks each of them "what is the current trend?" once per time step. It
// assembles the history window the strategies evaluate: a replayed batch and
// a live tail look identical from the rules' point of view.
package trader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
	"github.com/ranjananubhav7/algobot/internal/strategy"
)

// TrendChange records one strategy's transition between classifications.
type TrendChange struct {
	Strategy string      `json:"strategy"`
	Symbol   string      `json:"symbol"`
	From     model.Trend `json:"from"`
	To       model.Trend `json:"to"`
	TS       time.Time   `json:"ts"`
}

// Trader routes candles to registered strategies, single goroutine, no locks.
type Trader struct {
	strategies []strategy.Strategy
	lastTrend  []model.Trend

	history    []model.Candle
	maxHistory int

	// OnEvaluate, when set, observes every evaluation (metrics wiring).
	OnEvaluate func(name string, trend model.Trend, dur time.Duration, err error)
}

// New creates a Trader. maxHistory caps the retained candle window for
// long-lived live runs; 0 keeps the full history (backtests).
func New(maxHistory int) *Trader {
	return &Trader{maxHistory: maxHistory}
}

// Register adds a strategy to the evaluation loop.
func (t *Trader) Register(s strategy.Strategy) {
	t.strategies = append(t.strategies, s)
	t.lastTrend = append(t.lastTrend, model.TrendNone)
}

// Strategies returns the registered strategies.
func (t *Trader) Strategies() []strategy.Strategy {
	return t.strategies
}

// History returns the currently retained candle window.
func (t *Trader) History() []model.Candle {
	return t.history
}

// Step appends one candle and evaluates every strategy over the current
// window. It returns the trend transitions this step produced. Evaluation
// errors do not stop the remaining strategies; they are joined and returned.
func (t *Trader) Step(c model.Candle) ([]TrendChange, error) {
	t.history = append(t.history, c)
	if t.maxHistory > 0 && len(t.history) > t.maxHistory {
		n := copy(t.history, t.history[len(t.history)-t.maxHistory:])
		t.history = t.history[:n]
	}

	var changes []TrendChange
	var errs []error
	for i, s := range t.strategies {
		start := time.Now()
		trend, err := s.Evaluate(t.history)
		if t.OnEvaluate != nil {
			t.OnEvaluate(s.Name(), trend, time.Since(start), err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if trend != t.lastTrend[i] {
			changes = append(changes, TrendChange{
				Strategy: s.Name(),
				Symbol:   c.Symbol,
				From:     t.lastTrend[i],
				To:       trend,
				TS:       c.TS,
			})
			t.lastTrend[i] = trend
		}
	}
	return changes, errors.Join(errs...)
}

// Run consumes candles and emits trend changes. Blocks until ctx is
// cancelled or candleCh is closed. Evaluation errors are logged, not fatal:
// a live loop should survive a degenerate window.
func (t *Trader) Run(ctx context.Context, candleCh <-chan model.Candle, changeCh chan<- TrendChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-candleCh:
			if !ok {
				return
			}
			changes, err := t.Step(c)
			if err != nil {
				slog.Error("strategy evaluation failed", "symbol", c.Symbol, "err", err)
			}
			for _, ch := range changes {
				select {
				case changeCh <- ch:
				default:
					// change channel full, drop
				}
			}
		}
	}
}

// Reset rewinds the trader: clears the candle history and resets every
// strategy's rolling state, as when restarting a simulation.
func (t *Trader) Reset() {
	t.history = nil
	for i, s := range t.strategies {
		s.Reset()
		t.lastTrend[i] = model.TrendNone
	}
}
