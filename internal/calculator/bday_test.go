package calculator

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddBusinessDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"forward within week", date(2024, 3, 11 /* Mon */), 2, date(2024, 3, 13)},
		{"forward over weekend", date(2024, 3, 14 /* Thu */), 4, date(2024, 3, 20)},
		{"backward over weekend", date(2024, 3, 14 /* Thu */), -4, date(2024, 3, 8)},
		{"zero", date(2024, 3, 14), 0, date(2024, 3, 14)},
		{"from saturday forward", date(2024, 3, 16 /* Sat */), 1, date(2024, 3, 18)},
		{"from saturday backward", date(2024, 3, 16 /* Sat */), -1, date(2024, 3, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddBusinessDays(tc.start, tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("AddBusinessDays(%s, %d) = %s, want %s",
					tc.start.Format("2006-01-02"), tc.n, got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
			}
		})
	}
}

func TestAddBusinessDays_NeverLandsOnWeekend(t *testing.T) {
	start := date(2024, 3, 11)
	for n := -15; n <= 15; n++ {
		if n == 0 {
			continue
		}
		got := AddBusinessDays(start, n)
		if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("n=%d landed on %s (%s)", n, wd, got.Format("2006-01-02"))
		}
	}
}
