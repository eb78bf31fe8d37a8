// Package strategy implements the trend rules that classify a candle history
// as bullish, bearish, or neither.
//
// A Strategy is a single sequential state machine: the owning caller feeds it
// one history window per time step, in either batch form (a backtest slice)
// or incremental form (the growing live tail), and the rule extends its
// rolling state and returns a classification. Insufficient history is a
// normal outcome and yields TrendNone, never an error.
package strategy

import (
	"errors"
	"math"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// ErrDegenerateWindow is returned when a rule's divisor sums to zero — a flat
// indicator window. It is not recovered internally; the caller decides.
var ErrDegenerateWindow = errors.New("strategy: degenerate window (zero divisor)")

// IndicatorSource supplies indicator primitives over an explicit history
// window. A shift of N evaluates the indicator as of N bars ago.
type IndicatorSource interface {
	RSI(bars []model.Candle, period, shift int) (float64, error)
	MovingAverage(bars []model.Candle, kind model.MAKind, field model.PriceField, period int) (float64, error)
}

// Strategy is the contract every trend rule satisfies.
type Strategy interface {
	// Name returns the rule's name.
	Name() string

	// Evaluate classifies the trend over the supplied history window,
	// oldest bar first. The caller assembles the window; the rule mutates
	// its rolling state and returns the classification.
	Evaluate(bars []model.Candle) (model.Trend, error)

	// Params returns the rule's immutable configuration, in declaration order.
	Params() []any

	// Trend returns the last computed classification.
	Trend() model.Trend

	// Values returns the latest derived scalars, rounded for display.
	// Rules without introspectable state return nil.
	Values() map[string]float64

	// Reset clears all rolling state; the next Evaluate behaves as if the
	// rule were freshly constructed.
	Reset()
}

// DefaultPrecision is the display rounding applied to Values().
const DefaultPrecision = 2

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

func minFloat(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// sumHead sums up to n leading elements of vs.
func sumHead(vs []float64, n int) float64 {
	if n > len(vs) {
		n = len(vs)
	}
	sum := 0.0
	for _, v := range vs[:n] {
		sum += v
	}
	return sum
}
