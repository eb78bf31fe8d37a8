package strategy

import (
	"fmt"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// Option describes one moving-average comparison used by the consensus rule:
// an average over InitialBound bars measured against one over FinalBound bars,
// both of the same kind and price field. Immutable once constructed.
type Option struct {
	Kind         model.MAKind
	Field        model.PriceField
	InitialBound int // shorter window
	FinalBound   int // longer window
}

// Validate checks that the option describes a computable comparison.
func (o Option) Validate() error {
	if !o.Kind.Valid() {
		return fmt.Errorf("option: unknown moving-average kind %q", o.Kind)
	}
	if !o.Field.Valid() {
		return fmt.Errorf("option: unknown price field %q", o.Field)
	}
	if o.InitialBound < 1 || o.FinalBound < 1 {
		return fmt.Errorf("option: bounds must be positive, got (%d, %d)", o.InitialBound, o.FinalBound)
	}
	return nil
}

func (o Option) String() string {
	return fmt.Sprintf("%s(%s, %d/%d)", o.Kind, o.Field, o.InitialBound, o.FinalBound)
}
