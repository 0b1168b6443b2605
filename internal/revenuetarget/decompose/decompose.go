// Package decompose breaks a yearly revenue target into monthly, weekly
// and daily figures.
package decompose

import "time"

// DayTarget is one calendar day's even share of its month's target.
type DayTarget struct {
	Day    int     `json:"day"`
	Target float64 `json:"target"`
}

// WeekTarget is one planning week of a month: seven consecutive days,
// except the last week which takes whatever days remain.
type WeekTarget struct {
	Week   int         `json:"week"`
	Target float64     `json:"target"`
	Days   []DayTarget `json:"days"`
}

// MonthTarget carries the derived figures for one calendar month.
//
// Weekly and daily targets are both derived from the monthly figure but
// along different axes: the weekly target divides the month into
// ceil(days/7) planning weeks, while the daily target divides by the
// exact day count. Summing the daily figures over a short final week
// therefore does not reproduce the weekly figure. That mismatch is
// intentional; week targets are quotas for staffing, day targets are
// run-rate markers.
type MonthTarget struct {
	Month   int          `json:"month"`
	Days    int          `json:"days"`
	Monthly float64      `json:"monthly"`
	Weekly  float64      `json:"weekly"`
	Daily   float64      `json:"daily"`
	Weeks   []WeekTarget `json:"weeks"`
}

// Year splits yearlyTarget evenly across the twelve months of year and
// derives per-week and per-day figures for each month. No rounding is
// applied; presentation layers round for display.
func Year(yearlyTarget float64, year int) []MonthTarget {
	monthly := yearlyTarget / 12

	months := make([]MonthTarget, 12)
	for m := time.January; m <= time.December; m++ {
		days := DaysInMonth(year, m)
		weekCount := (days + 6) / 7
		weekly := monthly / float64(weekCount)
		daily := monthly / float64(days)

		weeks := make([]WeekTarget, 0, weekCount)
		for w := 0; w < weekCount; w++ {
			first := w*7 + 1
			last := first + 6
			if last > days {
				last = days
			}
			wt := WeekTarget{Week: w + 1, Target: weekly}
			for d := first; d <= last; d++ {
				wt.Days = append(wt.Days, DayTarget{Day: d, Target: daily})
			}
			weeks = append(weeks, wt)
		}

		months[m-1] = MonthTarget{
			Month:   int(m),
			Days:    days,
			Monthly: monthly,
			Weekly:  weekly,
			Daily:   daily,
			Weeks:   weeks,
		}
	}
	return months
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
