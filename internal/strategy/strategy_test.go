package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// stubSource scripts indicator outputs so the rules can be tested in
// isolation from the real calculator arithmetic.
type stubSource struct {
	rsi func(period, shift, nBars int) (float64, error)
	ma  func(kind model.MAKind, field model.PriceField, period int) (float64, error)
}

func (s stubSource) RSI(bars []model.Candle, period, shift int) (float64, error) {
	return s.rsi(period, shift, len(bars))
}

func (s stubSource) MovingAverage(bars []model.Candle, kind model.MAKind, field model.PriceField, period int) (float64, error) {
	return s.ma(kind, field, period)
}

func testBars(n int) []model.Candle {
	bars := make([]model.Candle, n)
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		px := 100 + float64(i)
		bars[i] = model.Candle{
			Symbol: "TEST",
			TS:     ts.Add(time.Duration(i) * time.Minute),
			Open:   px, High: px + 1, Low: px - 1, Close: px,
		}
	}
	return bars
}

func assertTrend(t *testing.T, label string, got, want model.Trend) {
	t.Helper()
	if got != want {
		t.Errorf("%s: trend = %s, want %s", label, got, want)
	}
}

func assertValue(t *testing.T, vals map[string]float64, key string, want float64) {
	t.Helper()
	got, ok := vals[key]
	if !ok {
		t.Errorf("values missing %q", key)
		return
	}
	if math.Abs(got-want) > 0.0001 {
		t.Errorf("values[%q] = %.4f, want %.4f", key, got, want)
	}
}
