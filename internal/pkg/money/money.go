package money

import "github.com/shopspring/decimal"

// RatioPlaces is the precision used for percentages and runway months.
const RatioPlaces = 2

var hundred = decimal.NewFromInt(100)

// Policy is the single rounding rule for monetary outputs.
// Places is the number of fractional digits of the storage currency unit;
// rounding is half away from zero.
type Policy struct {
	Places int32
}

// DefaultPolicy rounds to whole currency units.
var DefaultPolicy = Policy{Places: 0}

func (p Policy) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(p.Places)
}

// Ratio returns num/den, or zero when den is not positive.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}

// Percent returns num/den*100 rounded to RatioPlaces, or zero when den is not positive.
func Percent(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Mul(hundred).Div(den).Round(RatioPlaces)
}

// Sum adds values without intermediate rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// OrZero dereferences d, treating nil as zero.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
