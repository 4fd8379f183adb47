// Package workday enumerates working days (Monday to Friday) of a calendar month.
package workday

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

type Day struct {
	Date    time.Time `json:"date"`
	Weekday bool      `json:"weekday"`
}

func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Days lists every calendar day of the month in order, flagged weekday or weekend.
func Days(year, month int) ([]Day, error) {
	p, err := period.New(month, year)
	if err != nil {
		return nil, err
	}

	n := p.DaysInMonth()
	days := make([]Day, 0, n)
	start := p.Start()
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{Date: d, Weekday: IsWeekday(d)})
	}
	return days, nil
}

// Count returns the number of weekdays in the month.
func Count(year, month int) (int, error) {
	p, err := period.New(month, year)
	if err != nil {
		return 0, err
	}

	n := p.DaysInMonth()
	first := p.Start().Weekday()

	// Four full weeks always contribute 20 weekdays; only the remainder varies.
	count := 5 * (n / 7)
	for i := 0; i < n%7; i++ {
		wd := (int(first) + i) % 7
		if wd != int(time.Saturday) && wd != int(time.Sunday) {
			count++
		}
	}
	return count, nil
}

// CountPeriod is Count for a validated period.
func CountPeriod(p period.Period) (int, error) {
	return Count(p.Year, p.Month)
}
