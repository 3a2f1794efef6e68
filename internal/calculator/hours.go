package calculator

import (
	"time"

	"DivSentinel/internal/model"
)

const (
	sessionOpenSec  = 9*3600 + 30*60 // 09:30:00
	sessionCloseSec = 16 * 3600      // 16:00:00
)

// FilterTradingHours keeps only bars whose timestamp, converted to the
// exchange's local timezone, falls within the regular session
// [09:30, 16:00], inclusive on both ends. Order is preserved.
func FilterTradingHours(bars []model.PriceBar, loc *time.Location) []model.PriceBar {
	filtered := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		local := b.Time.In(loc)
		sec := local.Hour()*3600 + local.Minute()*60 + local.Second()
		if sec >= sessionOpenSec && sec <= sessionCloseSec {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
