package strategy

import (
	"errors"
	"testing"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Ladder stubs used across the Stoic tests. The rule samples RSI at shifts
// 0..period-1, so the stub shapes the ladder by (period, shift).

// descendingLadder peaks at shift 0; zeno==seneca and gaius==philo, so both
// ratios and their smoothing collapse to 100 on every evaluation.
func descendingLadder(period, shift, _ int) (float64, error) {
	return 80 - float64(shift), nil
}

func TestStoic_InsufficientHistoryIsSilent(t *testing.T) {
	src := stubSource{rsi: descendingLadder}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	// Deepest ladder rung needs 2*input2 bars; one short must be a quiet no-op.
	trend, err := s.Evaluate(testBars(19))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	assertTrend(t, "short history", trend, model.TrendNone)
	if len(s.seneca) != 0 {
		t.Errorf("short history mutated state: len(seneca)=%d, want 0", len(s.seneca))
	}
	if s.Values() != nil {
		t.Errorf("short history produced values: %v", s.Values())
	}
}

func TestStoic_FlatLadderConvergesToNoSignal(t *testing.T) {
	src := stubSource{rsi: descendingLadder}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	// Calls 1-2 accumulate gaius/philo, calls 3-4 accumulate hadot, call 5
	// computes the full comparison. marcus == stoic == 100 throughout, so the
	// rule never signals.
	bars := testBars(20)
	for call := 1; call <= 5; call++ {
		trend, err := s.Evaluate(bars)
		if err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
		assertTrend(t, "flat ladder", trend, model.TrendNone)
	}
	assertValue(t, s.Values(), "marcus", 100)
	assertValue(t, s.Values(), "stoic", 100)
}

func TestStoic_BullishWhenMarcusBelowStoic(t *testing.T) {
	// Short ladder descends (stoic=100); long ladder bottoms at shift 0 so
	// gaius=0, hadot=0, marcus=0.
	src := stubSource{rsi: func(period, shift, _ int) (float64, error) {
		if period == 5 {
			return 70 - float64(shift), nil
		}
		return 50 + float64(shift%3), nil
	}}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	bars := testBars(20)
	var trend model.Trend
	for call := 1; call <= 5; call++ {
		trend, err = s.Evaluate(bars)
		if err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
	}
	assertTrend(t, "bullish divergence", trend, model.TrendBullish)
	assertTrend(t, "Trend() accessor", s.Trend(), model.TrendBullish)
	assertValue(t, s.Values(), "marcus", 0)
	assertValue(t, s.Values(), "stoic", 100)
}

func TestStoic_BearishWhenMarcusAboveStoic(t *testing.T) {
	// Mirror of the bullish case: short ladder bottoms at shift 0 (stoic=0),
	// long ladder descends (marcus=100).
	src := stubSource{rsi: func(period, shift, _ int) (float64, error) {
		if period == 5 {
			return 50 + float64(shift%3), nil
		}
		return 80 - float64(shift), nil
	}}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	bars := testBars(20)
	var trend model.Trend
	for call := 1; call <= 5; call++ {
		trend, err = s.Evaluate(bars)
		if err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
	}
	assertTrend(t, "bearish divergence", trend, model.TrendBearish)
	assertValue(t, s.Values(), "marcus", 100)
	assertValue(t, s.Values(), "stoic", 0)
}

func TestStoic_DeterministicReplay(t *testing.T) {
	mk := func() *Stoic {
		src := stubSource{rsi: func(period, shift, nBars int) (float64, error) {
			return 40 + float64(nBars%7) + float64(shift)*0.5, nil
		}}
		s, err := NewStoic(src, 5, 10, 3, 2)
		if err != nil {
			t.Fatalf("NewStoic: %v", err)
		}
		return s
	}

	run := func(s *Stoic) (model.Trend, map[string]float64) {
		for n := 20; n <= 40; n++ {
			if _, err := s.Evaluate(testBars(n)); err != nil {
				t.Fatalf("evaluate %d bars: %v", n, err)
			}
		}
		return s.Trend(), s.Values()
	}

	t1, v1 := run(mk())
	t2, v2 := run(mk())
	if t1 != t2 {
		t.Errorf("replay diverged: %s vs %s", t1, t2)
	}
	for k, want := range v1 {
		assertValue(t, v2, k, want)
	}
}

func TestStoic_DegenerateWindow(t *testing.T) {
	// A perfectly flat ladder makes every spread zero; the third call is the
	// first to divide by sum(philo) and must surface the sentinel.
	src := stubSource{rsi: func(period, shift, _ int) (float64, error) { return 50, nil }}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	bars := testBars(20)
	for call := 1; call <= 2; call++ {
		if _, err := s.Evaluate(bars); err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
	}
	_, err = s.Evaluate(bars)
	if !errors.Is(err, ErrDegenerateWindow) {
		t.Errorf("flat ladder: err = %v, want ErrDegenerateWindow", err)
	}
}

func TestStoic_ParamsOrderAndName(t *testing.T) {
	src := stubSource{rsi: descendingLadder}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}
	if s.Name() != "Stoic" {
		t.Errorf("Name() = %q", s.Name())
	}
	params := s.Params()
	want := []any{5, 10, 3}
	if len(params) != len(want) {
		t.Fatalf("Params() = %v, want %v", params, want)
	}
	for i := range want {
		if params[i] != want[i] {
			t.Errorf("Params()[%d] = %v, want %v", i, params[i], want[i])
		}
	}
}

func TestStoic_ResetRestoresFreshBehavior(t *testing.T) {
	src := stubSource{rsi: descendingLadder}
	s, err := NewStoic(src, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewStoic: %v", err)
	}

	bars := testBars(20)
	for call := 1; call <= 5; call++ {
		if _, err := s.Evaluate(bars); err != nil {
			t.Fatalf("call %d: %v", call, err)
		}
	}
	s.Reset()

	if s.Trend() != model.TrendNone || s.Values() != nil {
		t.Errorf("Reset left state: trend=%s values=%v", s.Trend(), s.Values())
	}
	if _, err := s.Evaluate(bars); err != nil {
		t.Fatalf("post-reset evaluate: %v", err)
	}
	if len(s.seneca) != 1 || len(s.hadot) != 0 {
		t.Errorf("post-reset accumulation: seneca=%d hadot=%d, want 1 and 0",
			len(s.seneca), len(s.hadot))
	}
}

func TestNewStoic_RejectsBadInputs(t *testing.T) {
	src := stubSource{rsi: descendingLadder}
	cases := [][3]int{{0, 10, 3}, {5, 0, 3}, {5, 10, 0}, {-1, 10, 3}}
	for _, c := range cases {
		if _, err := NewStoic(src, c[0], c[1], c[2], 2); err == nil {
			t.Errorf("NewStoic(%d, %d, %d) accepted invalid inputs", c[0], c[1], c[2])
		}
	}
}
