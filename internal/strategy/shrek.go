package strategy

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Shrek is an RSI band rule with rolling-sum smoothing.
//
// Each evaluation samples an RSI ladder of two+1 rungs, records the ladder
// spread (apple) and the latest rung's distance from the ladder minimum
// (beetle), and once three+1 samples exist forms the ratio
// onion = 100 * sum(beetle) / sum(apple) over that window. onion below the
// lower bound reads bullish, above the upper bound bearish. The histories
// are trimmed after each full computation, so the window slides.
type Shrek struct {
	src       IndicatorSource
	one       int // lower bound (bullish test)
	two       int // RSI window
	three     int // rolling-sum window
	four      int // upper bound (bearish test)
	precision int

	// Rolling state, oldest-first. Bounded at three+1 by the
	// append-then-trim discipline in Evaluate.
	apple  []float64
	beetle []float64

	trend  model.Trend
	values map[string]float64
}

// NewShrek creates a Shrek rule. The band comparison assumes one < four;
// that precondition is enforced here.
func NewShrek(src IndicatorSource, one, two, three, four, precision int) (*Shrek, error) {
	if two < 1 || three < 1 {
		return nil, fmt.Errorf("shrek: windows must be positive, got rsi=%d sum=%d", two, three)
	}
	if one >= four {
		return nil, fmt.Errorf("shrek: lower bound %d must be below upper bound %d", one, four)
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Shrek{
		src:       src,
		one:       one,
		two:       two,
		three:     three,
		four:      four,
		precision: precision,
	}, nil
}

func (s *Shrek) Name() string { return "Shrek" }

func (s *Shrek) Params() []any {
	return []any{s.one, s.two, s.three, s.four}
}

func (s *Shrek) Trend() model.Trend { return s.trend }

func (s *Shrek) Values() map[string]float64 { return s.values }

func (s *Shrek) Reset() {
	s.apple, s.beetle = nil, nil
	s.trend = model.TrendNone
	s.values = nil
}

func (s *Shrek) Evaluate(bars []model.Candle) (model.Trend, error) {
	// The deepest ladder rung evaluates RSI(two) shifted two bars back.
	if len(bars) < 2*s.two+1 {
		return model.TrendNone, nil
	}

	samples := make([]float64, s.two+1)
	for i := range samples {
		v, err := s.src.RSI(bars, s.two, i)
		if err != nil {
			return model.TrendNone, fmt.Errorf("shrek: rsi(%d) shift %d: %w", s.two, i, err)
		}
		samples[i] = v
	}

	rsiLatest := samples[0]
	apple := maxFloat(samples) - minFloat(samples)
	beetle := rsiLatest - minFloat(samples)

	s.apple = append(s.apple, apple)
	s.beetle = append(s.beetle, beetle)

	if len(s.apple) < s.three+1 {
		return model.TrendNone, nil
	}

	carrot := sumHead(s.beetle, s.three+1)
	donkey := sumHead(s.apple, s.three+1)

	// Sliding-window discard: drop the oldest sample from both histories so
	// the window stays bounded at three+1.
	s.apple = s.apple[1:]
	s.beetle = s.beetle[1:]

	if donkey == 0 {
		return model.TrendNone, fmt.Errorf("shrek: apple sum: %w", ErrDegenerateWindow)
	}
	onion := carrot / donkey * 100

	s.values = map[string]float64{
		"apple":  roundTo(apple, s.precision),
		"beetle": roundTo(beetle, s.precision),
		"carrot": roundTo(carrot, s.precision),
		"donkey": roundTo(donkey, s.precision),
		"onion":  roundTo(onion, s.precision),
	}

	switch {
	case float64(s.one) > onion:
		s.trend = model.TrendBullish
	case onion > float64(s.four):
		s.trend = model.TrendBearish
	default:
		s.trend = model.TrendNone
	}
	return s.trend, nil
}
