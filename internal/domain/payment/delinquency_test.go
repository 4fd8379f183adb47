package payment

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	thisMonth := period.Period{Month: 3, Year: 2024}
	lastMonth := period.Period{Month: 2, Year: 2024}
	nextMonth := period.Period{Month: 4, Year: 2024}
	lastYear := period.Period{Month: 12, Year: 2023}

	cases := []struct {
		name         string
		plan, actual int64
		p            period.Period
		want         DelinquencyStatus
	}{
		{"unpaid past month", 500, 0, lastMonth, StatusOverdue},
		{"fully paid", 500, 500, lastMonth, StatusPaid},
		{"partially paid", 500, 200, lastMonth, StatusPartial},
		{"partial wins over overdue", 500, 200, lastYear, StatusPartial},
		{"unpaid current month", 500, 0, thisMonth, StatusPending},
		{"unpaid future month", 500, 0, nextMonth, StatusPending},
		{"overpaid", 500, 700, thisMonth, StatusPaid},
		{"nothing planned nothing paid", 0, 0, lastMonth, StatusPending},
		{"paid without plan", 0, 100, lastMonth, StatusPaid},
		{"unpaid across year boundary", 500, 0, lastYear, StatusOverdue},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(decimal.NewFromInt(c.plan), decimal.NewFromInt(c.actual), c.p, now)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestClassify_TimeTurnsPendingIntoOverdue(t *testing.T) {
	p := period.Period{Month: 3, Year: 2024}
	plan := decimal.NewFromInt(500)

	assert.Equal(t, StatusPending, Classify(plan, decimal.Zero, p, time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, StatusOverdue, Classify(plan, decimal.Zero, p, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestOutstanding(t *testing.T) {
	assert.Equal(t, "300", Outstanding(decimal.NewFromInt(500), decimal.NewFromInt(200)).String())
	assert.True(t, Outstanding(decimal.NewFromInt(500), decimal.NewFromInt(800)).IsZero())
}

func TestStatusCounts(t *testing.T) {
	var c StatusCounts
	for _, s := range []DelinquencyStatus{StatusPaid, StatusPaid, StatusOverdue, StatusPartial, StatusPending} {
		c.Add(s)
	}
	assert.Equal(t, StatusCounts{Paid: 2, Partial: 1, Overdue: 1, Pending: 1}, c)
	assert.True(t, StatusOverdue.IsReceivable())
	assert.True(t, StatusPartial.IsReceivable())
	assert.False(t, StatusPending.IsReceivable())
}
