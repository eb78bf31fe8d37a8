package model

// Trend is the classification a trend rule emits for one evaluation.
// The zero value TrendNone means "no signal" — a normal outcome, not an error.
type Trend int

const (
	TrendNone Trend = iota
	TrendBearish
	TrendBullish
)

// String returns the human-readable trend name.
func (t Trend) String() string {
	switch t {
	case TrendBullish:
		return "BULLISH"
	case TrendBearish:
		return "BEARISH"
	default:
		return "NONE"
	}
}
