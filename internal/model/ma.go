package model

// MAKind identifies a moving-average flavor.
type MAKind string

const (
	SMA MAKind = "sma"
	EMA MAKind = "ema"
	WMA MAKind = "wma"
)

// Valid reports whether the kind is one of the supported moving averages.
func (k MAKind) Valid() bool {
	switch k {
	case SMA, EMA, WMA:
		return true
	}
	return false
}

// PriceField selects which candle field a moving average is computed over.
type PriceField string

const (
	FieldOpen  PriceField = "open"
	FieldHigh  PriceField = "high"
	FieldLow   PriceField = "low"
	FieldClose PriceField = "close"
)

// Valid reports whether the field names a candle price component.
func (f PriceField) Valid() bool {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose:
		return true
	}
	return false
}
