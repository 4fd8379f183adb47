package payment

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

type DelinquencyStatus string

const (
	StatusPaid    DelinquencyStatus = "paid"
	StatusPartial DelinquencyStatus = "partial"
	StatusOverdue DelinquencyStatus = "overdue"
	StatusPending DelinquencyStatus = "pending"
)

// Classify derives the delinquency of a plan/actual pair for period p as seen at now.
// Rules apply in order: paid, partial, overdue (p strictly before now's month), pending.
func Classify(plan, actual decimal.Decimal, p period.Period, now time.Time) DelinquencyStatus {
	switch {
	case actual.GreaterThanOrEqual(plan) && actual.IsPositive():
		return StatusPaid
	case actual.IsPositive() && actual.LessThan(plan):
		return StatusPartial
	case p.Before(period.FromTime(now)) && actual.LessThan(plan):
		return StatusOverdue
	default:
		return StatusPending
	}
}

// Outstanding is the unpaid remainder, never negative.
func Outstanding(plan, actual decimal.Decimal) decimal.Decimal {
	return money.NonNegative(plan.Sub(actual))
}

// IsReceivable reports whether the status leaves money owed.
func (s DelinquencyStatus) IsReceivable() bool {
	return s == StatusOverdue || s == StatusPartial
}

// StatusCounts tallies classified rows.
type StatusCounts struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Overdue int `json:"overdue"`
	Pending int `json:"pending"`
}

func (c *StatusCounts) Add(s DelinquencyStatus) {
	switch s {
	case StatusPaid:
		c.Paid++
	case StatusPartial:
		c.Partial++
	case StatusOverdue:
		c.Overdue++
	default:
		c.Pending++
	}
}
