package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_Round(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{"285.714285", 0, "286"},
		{"0.5", 0, "1"},
		{"-0.5", 0, "-1"},
		{"12.345", 2, "12.35"},
		{"12.344", 2, "12.34"},
	}
	for _, c := range cases {
		got := Policy{Places: c.places}.Round(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "Round(%s, %d) = %s, want %s", c.in, c.places, got, c.want)
	}
}

func TestPercent_ZeroGuard(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(500), decimal.Zero).IsZero())
	assert.True(t, Percent(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, Percent(decimal.NewFromInt(10), decimal.NewFromInt(-5)).IsZero())
	assert.Equal(t, "40", Percent(decimal.NewFromInt(200), decimal.NewFromInt(500)).String())
	assert.Equal(t, "33.33", Percent(decimal.NewFromInt(1), decimal.NewFromInt(3)).String())
}

func TestRatio_ZeroGuard(t *testing.T) {
	assert.True(t, Ratio(decimal.NewFromInt(10), decimal.Zero).IsZero())
	assert.Equal(t, "2.5", Ratio(decimal.NewFromInt(5), decimal.NewFromInt(2)).String())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "6", Sum(decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3)).String())
	assert.True(t, NonNegative(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, OrZero(nil).IsZero())
	five := decimal.NewFromInt(5)
	assert.True(t, OrZero(&five).Equal(five))
}
