package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine(t *testing.T) {
	p := period.Period{Month: 3, Year: 2024}

	cases := []struct {
		name          string
		in            LineInput
		wantDeduction string
		wantTotal     string
	}{
		{
			name:          "unpaid leave with bonus",
			in:            LineInput{BaseSalary: d("3000"), Bonus: d("100"), WorkingDays: 20, AbsentDays: 2},
			wantDeduction: "300",
			wantTotal:     "2800",
		},
		{
			name:          "no absences",
			in:            LineInput{BaseSalary: d("3000"), Bonus: d("0"), WorkingDays: 21},
			wantDeduction: "0",
			wantTotal:     "3000",
		},
		{
			name:          "deduction rounds half away from zero",
			in:            LineInput{BaseSalary: d("1000"), WorkingDays: 21, AbsentDays: 1},
			wantDeduction: "48", // 47.619...
			wantTotal:     "952",
		},
		{
			name:          "zero working days never divides",
			in:            LineInput{BaseSalary: d("3000"), WorkingDays: 0, AbsentDays: 3},
			wantDeduction: "0",
			wantTotal:     "3000",
		},
		{
			name:          "negative total surfaces",
			in:            LineInput{BaseSalary: d("3000"), Bonus: d("0"), WorkingDays: 20, AbsentDays: 25},
			wantDeduction: "3750",
			wantTotal:     "-750",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.in.Period = p
			line := ComputeLine(c.in, money.DefaultPolicy)
			assert.True(t, line.Deduction.Equal(d(c.wantDeduction)), "deduction = %s", line.Deduction)
			assert.True(t, line.Total.Equal(d(c.wantTotal)), "total = %s", line.Total)
			assert.True(t, line.Gross.Equal(c.in.BaseSalary.Add(c.in.Bonus)))
			assert.Equal(t, p, line.Period)
		})
	}
}

func TestComputeLine_FractionalPolicy(t *testing.T) {
	line := ComputeLine(LineInput{BaseSalary: d("1000"), WorkingDays: 21, AbsentDays: 1}, money.Policy{Places: 2})
	assert.Equal(t, "47.62", line.Deduction.String())
	assert.Equal(t, "952.38", line.Total.String())
	assert.Equal(t, "47.62", line.DailyRate.String())
}
