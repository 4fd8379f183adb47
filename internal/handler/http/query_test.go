package http

import (
	"testing"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodQuery(t *testing.T) {
	p, err := periodQuery("6", "2024")
	require.NoError(t, err)
	assert.Equal(t, period.Period{Month: 6, Year: 2024}, p)

	tests := []struct {
		name  string
		month string
		year  string
		field string
	}{
		{"month out of range", "13", "2024", "month"},
		{"year out of range", "6", "1900", "year"},
		{"month not an integer", "june", "2024", "month"},
		{"year missing", "6", "", "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := periodQuery(tt.month, tt.year)
			assert.ErrorIs(t, err, period.ErrInvalidPeriod)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}
