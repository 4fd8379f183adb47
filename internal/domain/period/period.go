package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period")

const (
	MinYear = 1970
	MaxYear = 9999
)

// Period identifies a calendar month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// WithFieldErrors joins per-field validation errors with ErrInvalidPeriod so
// errors.Is matches the period kind and errors.As still finds the details.
func WithFieldErrors(errs error) error {
	return errors.Join(ErrInvalidPeriod, errs)
}

func New(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// FromTime returns the period containing t, evaluated in t's location.
func FromTime(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Parse accepts "YYYY-MM".
func Parse(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return FromTime(t), nil
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidPeriod, p.Month)
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return fmt.Errorf("%w: year %d is out of range", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// index is a monotonic month counter used for ordering and arithmetic.
func (p Period) index() int {
	return p.Year*12 + (p.Month - 1)
}

func fromIndex(i int) Period {
	return Period{Month: i%12 + 1, Year: i / 12}
}

func (p Period) Before(o Period) bool { return p.index() < o.index() }

func (p Period) After(o Period) bool { return p.index() > o.index() }

func (p Period) Equal(o Period) bool { return p.index() == o.index() }

// AddMonths shifts p by n months (n may be negative).
func (p Period) AddMonths(n int) Period {
	return fromIndex(p.index() + n)
}

// Start is the first instant of the period in UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the last calendar day of the period (midnight UTC).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) DaysInMonth() int {
	return p.End().Day()
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Window is an inclusive range of periods.
type Window struct {
	From Period `json:"from"`
	To   Period `json:"to"`
}

// Single is the window containing only p.
func Single(p Period) Window {
	return Window{From: p, To: p}
}

// YearToDate runs from January of p's year through p.
func YearToDate(p Period) Window {
	return Window{From: Period{Month: 1, Year: p.Year}, To: p}
}

// Trailing returns the n-month window ending at p.
func Trailing(p Period, n int) Window {
	if n < 1 {
		n = 1
	}
	return Window{From: p.AddMonths(-(n - 1)), To: p}
}

func (w Window) Validate() error {
	if err := w.From.Validate(); err != nil {
		return err
	}
	if err := w.To.Validate(); err != nil {
		return err
	}
	if w.To.Before(w.From) {
		return fmt.Errorf("%w: window ends before it starts", ErrInvalidPeriod)
	}
	return nil
}

func (w Window) Contains(p Period) bool {
	return !p.Before(w.From) && !p.After(w.To)
}

// Months lists every period of the window in order.
func (w Window) Months() []Period {
	if w.To.Before(w.From) {
		return nil
	}
	months := make([]Period, 0, w.To.index()-w.From.index()+1)
	for i := w.From.index(); i <= w.To.index(); i++ {
		months = append(months, fromIndex(i))
	}
	return months
}

func (w Window) Len() int {
	if w.To.Before(w.From) {
		return 0
	}
	return w.To.index() - w.From.index() + 1
}

// StartDate and EndDate bound the window in calendar dates, both inclusive.
func (w Window) StartDate() time.Time { return w.From.Start() }

func (w Window) EndDate() time.Time { return w.To.End() }
