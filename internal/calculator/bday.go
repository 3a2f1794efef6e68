package calculator

import "time"

// AddBusinessDays moves t by n business days (Mon-Fri, no holiday
// calendar). Negative n steps backwards. Weekend days never count toward
// n, so stepping from a weekday always lands on a weekday.
func AddBusinessDays(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	step := 1
	remaining := n
	if n < 0 {
		step = -1
		remaining = -n
	}
	for remaining > 0 {
		t = t.AddDate(0, 0, step)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			remaining--
		}
	}
	return t
}
