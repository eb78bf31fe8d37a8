package indicator

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// MovingAverage computes the requested moving average of a price field.
//
// SMA and WMA use exactly the last `period` bars. EMA is smoothed over the
// whole window with an SMA seed over its first `period` bars, so its value
// depends on the full history supplied — the standard convention.
func MovingAverage(bars []model.Candle, kind model.MAKind, field model.PriceField, period int) (float64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("moving average: unknown kind %q", kind)
	}
	if !field.Valid() {
		return 0, fmt.Errorf("moving average: unknown price field %q", field)
	}
	if period < 1 {
		return 0, fmt.Errorf("moving average: period must be >= 1, got %d", period)
	}
	if len(bars) < period {
		return 0, fmt.Errorf("moving average: need %d bars, have %d", period, len(bars))
	}

	switch kind {
	case model.SMA:
		return sma(bars[len(bars)-period:], field), nil
	case model.WMA:
		return wma(bars[len(bars)-period:], field), nil
	default:
		return ema(bars, field, period), nil
	}
}

func sma(window []model.Candle, field model.PriceField) float64 {
	sum := 0.0
	for i := range window {
		sum += window[i].Field(field)
	}
	return sum / float64(len(window))
}

// wma weights the newest bar highest: weights 1..period oldest to newest.
func wma(window []model.Candle, field model.PriceField) float64 {
	var sum, weights float64
	for i := range window {
		w := float64(i + 1)
		sum += window[i].Field(field) * w
		weights += w
	}
	return sum / weights
}

func ema(bars []model.Candle, field model.PriceField, period int) float64 {
	// SMA seed over the first `period` bars
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += bars[i].Field(field)
	}
	cur := seed / float64(period)

	k := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(bars); i++ {
		cur = bars[i].Field(field)*k + cur*(1.0-k)
	}
	return cur
}
