package strategy

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// MovingAverage is the multi-indicator crossover consensus rule.
//
// Every configured option votes by comparing its shorter-window average
// against its longer-window one; the overall trend is bullish or bearish only
// on a unanimous vote, anything else is no signal. The rule accumulates no
// rolling state between evaluations.
type MovingAverage struct {
	src     IndicatorSource
	options []Option
	trend   model.Trend
}

// NewMovingAverage creates the consensus rule. Construction fails if any
// option does not describe a valid comparison.
func NewMovingAverage(src IndicatorSource, options []Option) (*MovingAverage, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("moving average: at least one option required")
	}
	for i, opt := range options {
		if err := opt.Validate(); err != nil {
			return nil, fmt.Errorf("moving average: option %d: %w", i, err)
		}
	}
	return &MovingAverage{src: src, options: options}, nil
}

func (m *MovingAverage) Name() string { return "movingAverage" }

func (m *MovingAverage) Params() []any {
	params := make([]any, len(m.options))
	for i, opt := range m.options {
		params[i] = opt
	}
	return params
}

func (m *MovingAverage) Trend() model.Trend { return m.trend }

// Values returns nil: the rule keeps no rolling state to introspect.
func (m *MovingAverage) Values() map[string]float64 { return nil }

func (m *MovingAverage) Reset() {
	m.trend = model.TrendNone
}

// MinOptionPeriod returns the minimum history length the caller must supply
// before the first meaningful evaluation: the largest window bound among all
// options.
func (m *MovingAverage) MinOptionPeriod() int {
	minimum := 0
	for _, opt := range m.options {
		if opt.InitialBound > minimum {
			minimum = opt.InitialBound
		}
		if opt.FinalBound > minimum {
			minimum = opt.FinalBound
		}
	}
	return minimum
}

func (m *MovingAverage) Evaluate(bars []model.Candle) (model.Trend, error) {
	if len(bars) < m.MinOptionPeriod() {
		m.trend = model.TrendNone
		return model.TrendNone, nil
	}

	// All option votes must agree for a trend to register.
	allBullish, allBearish := true, true
	for _, opt := range m.options {
		avg1, err := m.src.MovingAverage(bars, opt.Kind, opt.Field, opt.InitialBound)
		if err != nil {
			return model.TrendNone, fmt.Errorf("moving average: %s initial: %w", opt, err)
		}
		avg2, err := m.src.MovingAverage(bars, opt.Kind, opt.Field, opt.FinalBound)
		if err != nil {
			return model.TrendNone, fmt.Errorf("moving average: %s final: %w", opt, err)
		}

		switch {
		case avg1 > avg2:
			allBearish = false
		case avg1 < avg2:
			allBullish = false
		default:
			// Equal averages vote for no trend at all.
			allBullish, allBearish = false, false
		}
	}

	switch {
	case allBullish:
		m.trend = model.TrendBullish
	case allBearish:
		m.trend = model.TrendBearish
	default:
		m.trend = model.TrendNone
	}
	return m.trend, nil
}
