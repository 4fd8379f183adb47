package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		month, year int
		wantErr     bool
	}{
		{1, 2024, false},
		{12, 2024, false},
		{0, 2024, true},
		{13, 2024, true},
		{6, 1900, true},
	}
	for _, c := range cases {
		_, err := New(c.month, c.year)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPeriod, "New(%d, %d)", c.month, c.year)
		} else {
			assert.NoError(t, err, "New(%d, %d)", c.month, c.year)
		}
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("2024-03")
	require.NoError(t, err)
	assert.Equal(t, Period{Month: 3, Year: 2024}, p)

	_, err = Parse("2024-13")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestAddMonths_CrossesYears(t *testing.T) {
	p := Period{Month: 2, Year: 2024}
	assert.Equal(t, Period{Month: 12, Year: 2023}, p.AddMonths(-2))
	assert.Equal(t, Period{Month: 1, Year: 2025}, p.AddMonths(11))
}

func TestOrdering(t *testing.T) {
	jan := Period{Month: 1, Year: 2024}
	dec := Period{Month: 12, Year: 2023}
	assert.True(t, dec.Before(jan))
	assert.True(t, jan.After(dec))
	assert.False(t, jan.Before(jan))
}

func TestStartEnd(t *testing.T) {
	p := Period{Month: 2, Year: 2024}
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, 29, p.DaysInMonth())
	assert.Equal(t, "2024-02", p.String())
}

func TestWindow(t *testing.T) {
	ytd := YearToDate(Period{Month: 4, Year: 2024})
	assert.Equal(t, Period{Month: 1, Year: 2024}, ytd.From)
	assert.Equal(t, 4, ytd.Len())
	assert.True(t, ytd.Contains(Period{Month: 1, Year: 2024}))
	assert.True(t, ytd.Contains(Period{Month: 4, Year: 2024}))
	assert.False(t, ytd.Contains(Period{Month: 5, Year: 2024}))
	assert.False(t, ytd.Contains(Period{Month: 12, Year: 2023}))

	trailing := Trailing(Period{Month: 3, Year: 2024}, 6)
	months := trailing.Months()
	require.Len(t, months, 6)
	assert.Equal(t, Period{Month: 10, Year: 2023}, months[0])
	assert.Equal(t, Period{Month: 3, Year: 2024}, months[5])

	bad := Window{From: Period{Month: 5, Year: 2024}, To: Period{Month: 4, Year: 2024}}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPeriod)
	assert.Empty(t, bad.Months())
}
