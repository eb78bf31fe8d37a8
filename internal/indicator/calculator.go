package indicator

import "github.com/ranjananubhav7/algobot/internal/model"

// Calculator is the standard indicator provider handed to trend rules.
// It is stateless; every call computes from the supplied window.
type Calculator struct{}

func (Calculator) RSI(bars []model.Candle, period, shift int) (float64, error) {
	return RSI(bars, period, shift)
}

func (Calculator) MovingAverage(bars []model.Candle, kind model.MAKind, field model.PriceField, period int) (float64, error) {
	return MovingAverage(bars, kind, field, period)
}
