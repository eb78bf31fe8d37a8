package strategy

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Stoic is an RSI divergence/convergence composite rule.
//
// Each evaluation derives four scalars from two RSI ladders (one per window
// length), accumulates them newest-first, and compares a smoothed ratio of
// the long-window spreads (marcus) against the short-window ratio (stoic):
// marcus above stoic reads bearish, below reads bullish.
type Stoic struct {
	src       IndicatorSource
	input1    int // short RSI window
	input2    int // long RSI window
	input3    int // smoothing divisor for marcus
	precision int

	// Rolling state, newest-first. Grows unbounded; the sums only ever
	// consult the leading elements.
	seneca []float64 // spread of the input1 ladder
	zeno   []float64 // latest-over-min of the input1 ladder
	gaius  []float64 // latest-over-min of the input2 ladder
	philo  []float64 // spread of the input2 ladder
	hadot  []float64 // 100 * sum(gaius[:3]) / sum(philo[:3])

	trend  model.Trend
	values map[string]float64
}

// NewStoic creates a Stoic rule. All three inputs must be positive; input3
// is a divisor, so a zero value is rejected here rather than at divide time.
func NewStoic(src IndicatorSource, input1, input2, input3, precision int) (*Stoic, error) {
	if input1 < 1 || input2 < 1 || input3 < 1 {
		return nil, fmt.Errorf("stoic: inputs must be positive, got (%d, %d, %d)", input1, input2, input3)
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Stoic{
		src:       src,
		input1:    input1,
		input2:    input2,
		input3:    input3,
		precision: precision,
	}, nil
}

func (s *Stoic) Name() string { return "Stoic" }

func (s *Stoic) Params() []any {
	return []any{s.input1, s.input2, s.input3}
}

func (s *Stoic) Trend() model.Trend { return s.trend }

func (s *Stoic) Values() map[string]float64 { return s.values }

// Reset clears all rolling history; used when the caller rewinds a run.
func (s *Stoic) Reset() {
	s.seneca, s.zeno, s.gaius, s.philo, s.hadot = nil, nil, nil, nil, nil
	s.trend = model.TrendNone
	s.values = nil
}

// minBars is the history needed before the RSI ladders are computable: the
// deepest rung evaluates RSI(inputN) shifted inputN-1 bars back.
func (s *Stoic) minBars() int {
	m := 2 * s.input1
	if 2*s.input2 > m {
		m = 2 * s.input2
	}
	if s.input3+1 > m {
		m = s.input3 + 1
	}
	return m
}

func (s *Stoic) Evaluate(bars []model.Candle) (model.Trend, error) {
	if len(bars) < s.minBars() {
		return model.TrendNone, nil
	}

	rsiOne := make([]float64, s.input1)
	for i := range rsiOne {
		v, err := s.src.RSI(bars, s.input1, i)
		if err != nil {
			return model.TrendNone, fmt.Errorf("stoic: rsi(%d) shift %d: %w", s.input1, i, err)
		}
		rsiOne[i] = v
	}
	rsiTwo := make([]float64, s.input2)
	for i := range rsiTwo {
		v, err := s.src.RSI(bars, s.input2, i)
		if err != nil {
			return model.TrendNone, fmt.Errorf("stoic: rsi(%d) shift %d: %w", s.input2, i, err)
		}
		rsiTwo[i] = v
	}

	seneca := maxFloat(rsiOne) - minFloat(rsiOne)
	zeno := rsiOne[0] - minFloat(rsiOne)
	gaius := rsiTwo[0] - minFloat(rsiTwo)
	philo := maxFloat(rsiTwo) - minFloat(rsiTwo)

	s.seneca = append([]float64{seneca}, s.seneca...)
	s.zeno = append([]float64{zeno}, s.zeno...)
	s.gaius = append([]float64{gaius}, s.gaius...)
	s.philo = append([]float64{philo}, s.philo...)

	if len(s.gaius) < 3 {
		s.trend = model.TrendNone
		return model.TrendNone, nil
	}

	sumPhilo := sumHead(s.philo, 3)
	if sumPhilo == 0 {
		return model.TrendNone, fmt.Errorf("stoic: philo sum: %w", ErrDegenerateWindow)
	}
	hadot := sumHead(s.gaius, 3) / sumPhilo * 100
	s.hadot = append([]float64{hadot}, s.hadot...)

	if len(s.hadot) < 3 {
		s.trend = model.TrendNone
		return model.TrendNone, nil
	}

	sumSeneca := sumHead(s.seneca, 3)
	if sumSeneca == 0 {
		return model.TrendNone, fmt.Errorf("stoic: seneca sum: %w", ErrDegenerateWindow)
	}
	stoic := sumHead(s.zeno, 3) / sumSeneca * 100

	// marcus divides by the full input3 even while fewer hadot samples have
	// accumulated, so early readings are biased low. Source behavior,
	// preserved as documented.
	marcus := sumHead(s.hadot, s.input3) / float64(s.input3)

	s.values = map[string]float64{
		"marcus": roundTo(marcus, s.precision),
		"stoic":  roundTo(stoic, s.precision),
		"seneca": roundTo(seneca, s.precision),
		"zeno":   roundTo(zeno, s.precision),
		"gaius":  roundTo(gaius, s.precision),
		"philo":  roundTo(philo, s.precision),
		"hadot":  roundTo(hadot, s.precision),
	}

	switch {
	case marcus > stoic:
		s.trend = model.TrendBearish
	case marcus < stoic:
		s.trend = model.TrendBullish
	default:
		s.trend = model.TrendNone
	}
	return s.trend, nil
}
