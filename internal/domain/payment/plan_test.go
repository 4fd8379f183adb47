package payment

import (
	"testing"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestPlanResolver_FallbackChain(t *testing.T) {
	programs := []Program{{ID: "prog-a", Name: "Programme A", DefaultPrice: decimal.NewFromInt(400)}}
	participants := []Participant{
		{ID: "with-tariff", ProgramID: "prog-a", OverrideTariff: decimalPtr(350), Active: true},
		{ID: "default-only", ProgramID: "prog-a", Active: true},
		{ID: "no-program", Active: true},
	}
	resolver := NewPlanResolver(participants, programs)

	cases := []struct {
		name       string
		record     PlanActualRecord
		wantAmount int64
		wantSource PlanSource
	}{
		{
			name:       "explicit plan wins",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "with-tariff", PlanAmount: decimalPtr(500)},
			wantAmount: 500,
			wantSource: PlanSourceExplicit,
		},
		{
			name:       "override tariff when plan is absent",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "with-tariff"},
			wantAmount: 350,
			wantSource: PlanSourceOverride,
		},
		{
			name:       "zero plan defers to the tariff",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "with-tariff", PlanAmount: decimalPtr(0)},
			wantAmount: 350,
			wantSource: PlanSourceOverride,
		},
		{
			name:       "program default when no tariff",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "default-only"},
			wantAmount: 400,
			wantSource: PlanSourceProgramDefault,
		},
		{
			name:       "record category names the program for unknown participants",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "ghost", Category: "prog-a"},
			wantAmount: 400,
			wantSource: PlanSourceProgramDefault,
		},
		{
			name:       "nothing to fall back to",
			record:     PlanActualRecord{SubjectKind: SubjectParticipant, SubjectID: "no-program"},
			wantAmount: 0,
			wantSource: PlanSourceNone,
		},
		{
			name:       "expense forecasts only use the explicit plan",
			record:     PlanActualRecord{SubjectKind: SubjectExpenseCategory, SubjectID: "rent"},
			wantAmount: 0,
			wantSource: PlanSourceNone,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			amount, source := resolver.Resolve(c.record)
			assert.True(t, amount.Equal(decimal.NewFromInt(c.wantAmount)), "amount = %s", amount)
			assert.Equal(t, c.wantSource, source)
		})
	}
}

func TestParticipant_EnrolledIn(t *testing.T) {
	start := period.Period{Month: 2, Year: 2024}
	end := period.Period{Month: 4, Year: 2024}
	p := Participant{Active: true, StartPeriod: &start, EndPeriod: &end}

	assert.False(t, p.EnrolledIn(period.Period{Month: 1, Year: 2024}))
	assert.True(t, p.EnrolledIn(start))
	assert.True(t, p.EnrolledIn(end))
	assert.False(t, p.EnrolledIn(period.Period{Month: 5, Year: 2024}))

	p.Active = false
	assert.False(t, p.EnrolledIn(start))
}
