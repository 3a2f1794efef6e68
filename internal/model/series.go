package model

import "time"

// NormalizedSeries is one event's daily-resolution price series indexed
// by signed trading-day offset. Offset 0 is the row whose date equals the
// event's ex-dividend date; offsets are contiguous ordinals over the
// trading days present in the window, not calendar days.
type NormalizedSeries struct {
	Ticker     string
	RecordDate time.Time
	Values     map[int]float64
}

// OffsetStats is the cross-event distribution of rescaled prices at one
// trading-day offset.
type OffsetStats struct {
	Offset int
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	P50    float64
	P75    float64
	Max    float64
}

// DropEstimate is the fraction of pre-event value expected to be lost on
// the ex-dividend day, rounded to 4 decimal digits.
type DropEstimate float64
