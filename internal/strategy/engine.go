package strategy

import (
	"DivSentinel/internal/calculator"
	"DivSentinel/internal/model"
)

// Decision is the outcome of comparing the estimated ex-day drop against
// the requested dividend yield.
type Decision struct {
	Outcome model.Outcome
	Drop    float64 // rounded to 4 decimals
	Yield   float64 // rounded to 4 decimals
	// ExpectedProfit is 100 * (yield - drop), in percent. Only meaningful
	// for OutcomeProfit.
	ExpectedProfit float64
}

// Evaluate applies the decision rule. Both sides are rounded to 4
// decimal digits before comparison. An exact tie fires neither the alert
// nor the negative-profit branch; it is its own outcome.
func Evaluate(drop model.DropEstimate, yield float64) *Decision {
	d := calculator.Round4(float64(drop))
	y := calculator.Round4(yield)

	dec := &Decision{Drop: d, Yield: y}
	switch {
	case d < y:
		dec.Outcome = model.OutcomeProfit
		dec.ExpectedProfit = 100 * (y - d)
	case d > y:
		dec.Outcome = model.OutcomeNegativeProfit
	default:
		dec.Outcome = model.OutcomeNoAction
	}
	return dec
}
