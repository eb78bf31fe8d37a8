package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTrend_String(t *testing.T) {
	cases := map[Trend]string{
		TrendNone:    "NONE",
		TrendBearish: "BEARISH",
		TrendBullish: "BULLISH",
		Trend(99):    "NONE",
	}
	for trend, want := range cases {
		if got := trend.String(); got != want {
			t.Errorf("Trend(%d).String() = %q, want %q", trend, got, want)
		}
	}
}

func TestTrend_ZeroValueIsNone(t *testing.T) {
	var tr Trend
	if tr != TrendNone {
		t.Errorf("zero value = %v, want TrendNone", tr)
	}
}

func TestCandle_Field(t *testing.T) {
	c := Candle{Open: 1, High: 2, Low: 3, Close: 4}
	cases := map[PriceField]float64{
		FieldOpen:  1,
		FieldHigh:  2,
		FieldLow:   3,
		FieldClose: 4,
	}
	for f, want := range cases {
		if got := c.Field(f); got != want {
			t.Errorf("Field(%q) = %v, want %v", f, got, want)
		}
	}
}

func TestCandle_JSONRoundTrip(t *testing.T) {
	c := Candle{
		Symbol: "BTCUSDT",
		TS:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Open:   42000.1, High: 42100.5, Low: 41950, Close: 42080.25, Volume: 12.3,
	}
	var back Candle
	if err := json.Unmarshal(c.JSON(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Symbol != c.Symbol || !back.TS.Equal(c.TS) || back.Close != c.Close {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
}

func TestMAKind_Valid(t *testing.T) {
	for _, k := range []MAKind{SMA, EMA, WMA} {
		if !k.Valid() {
			t.Errorf("%q reported invalid", k)
		}
	}
	if MAKind("vwap").Valid() {
		t.Error("unknown kind reported valid")
	}
}

func TestPriceField_Valid(t *testing.T) {
	for _, f := range []PriceField{FieldOpen, FieldHigh, FieldLow, FieldClose} {
		if !f.Valid() {
			t.Errorf("%q reported invalid", f)
		}
	}
	if PriceField("median").Valid() {
		t.Error("unknown field reported valid")
	}
}
