package calculator

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"DivSentinel/internal/model"
)

// ErrNoBasePrice is returned when a series has no offset -1 entry and
// therefore cannot be rescaled to the common pre-event base.
var ErrNoBasePrice = errors.New("series has no offset -1 base price")

// ErrNoDayZero is returned when the pooled stats contain no offset 0 row,
// leaving nothing to estimate the drop from.
var ErrNoDayZero = errors.New("no offset 0 distribution available")

// Rescale anchors a normalized series to its offset -1 price: every value
// is divided by the day-before-ex price so the pre-event level is 1.0.
func Rescale(s model.NormalizedSeries) (model.NormalizedSeries, error) {
	base, ok := s.Values[-1]
	if !ok {
		return model.NormalizedSeries{}, ErrNoBasePrice
	}
	values := make(map[int]float64, len(s.Values))
	for offset, v := range s.Values {
		values[offset] = v / base
	}
	return model.NormalizedSeries{Ticker: s.Ticker, RecordDate: s.RecordDate, Values: values}, nil
}

// Aggregate pools rescaled values across events by offset and computes
// the per-offset distribution. Results are sorted by offset. Grouping by
// offset is order-independent, so permuting the input series changes
// nothing.
func Aggregate(series []model.NormalizedSeries) []model.OffsetStats {
	pooled := make(map[int][]float64)
	for _, s := range series {
		for offset, v := range s.Values {
			pooled[offset] = append(pooled[offset], v)
		}
	}

	stats := make([]model.OffsetStats, 0, len(pooled))
	for offset, values := range pooled {
		sort.Float64s(values)
		stats = append(stats, model.OffsetStats{
			Offset: offset,
			Count:  len(values),
			Mean:   stat.Mean(values, nil),
			Std:    stat.StdDev(values, nil),
			Min:    values[0],
			P25:    quantile(values, 0.25),
			P50:    quantile(values, 0.50),
			P75:    quantile(values, 0.75),
			Max:    values[len(values)-1],
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Offset < stats[j].Offset })
	return stats
}

// EstimateDrop derives the expected ex-day drop from the offset 0
// distribution: 1 minus the smaller of the two day-0 quartiles, a
// conservative read of the retained value fraction, rounded to 4 decimal
// digits.
func EstimateDrop(stats []model.OffsetStats) (model.DropEstimate, error) {
	for _, s := range stats {
		if s.Offset == 0 {
			return model.DropEstimate(Round4(1 - math.Min(s.P25, s.P75))), nil
		}
	}
	return 0, ErrNoDayZero
}

// Round4 rounds to 4 decimal digits, the precision both the drop estimate
// and the requested yield are compared at.
func Round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

// quantile computes the p-quantile of sorted values by linear
// interpolation over order statistics (the R-7 estimator). gonum's
// stat.Quantile cumulant kinds implement different estimators, so this
// stays local to keep parity with the distribution table's quartiles.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
