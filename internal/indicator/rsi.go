// Package indicator provides technical indicator calculations over candle data.
//
// All functions operate on an explicit history window and are pure: given the
// same bars they return the same value. A shift of N evaluates the indicator
// as of N bars ago by ignoring the newest N bars.
package indicator

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// RSI computes the Relative Strength Index over closing prices using Wilder's
// smoothing method: the first average gain/loss is an SMA seed over the first
// `period` deltas, every later delta is smoothed with weight 1/period.
func RSI(bars []model.Candle, period, shift int) (float64, error) {
	if period < 1 {
		return 0, fmt.Errorf("rsi: period must be >= 1, got %d", period)
	}
	if shift < 0 {
		return 0, fmt.Errorf("rsi: shift must be >= 0, got %d", shift)
	}
	n := len(bars) - shift
	if n < period+1 {
		return 0, fmt.Errorf("rsi: need %d bars for period %d shift %d, have %d",
			period+shift+1, period, shift, len(bars))
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := bars[i].Close - bars[i-1].Close
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	p := float64(period)
	for i := period + 1; i < n; i++ {
		delta := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), nil
}
