package model

// Outcome classifies the terminal state of one analysis request.
type Outcome string

const (
	// OutcomeProfit means the estimated drop is smaller than the requested
	// yield; an alert is published.
	OutcomeProfit Outcome = "PROFIT"
	// OutcomeNegativeProfit means the estimated drop exceeds the yield.
	OutcomeNegativeProfit Outcome = "NEGATIVE_PROFIT"
	// OutcomeNoAction is the exact-tie case: drop equals yield after
	// rounding, neither branch fires.
	OutcomeNoAction Outcome = "NO_ACTION"
	// OutcomeInsufficientHistory means no event survived to aggregation.
	// It is a successful terminal state, not an error.
	OutcomeInsufficientHistory Outcome = "INSUFFICIENT_HISTORY"
)
