package payment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-finance-go/internal/service/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(opts ...Option) payment.PaymentService {
	store := memory.NewStore()
	start := period.Period{Month: 1, Year: 2024}
	override := decimal.NewFromInt(400)

	store.PutProgram(payment.Program{ID: "eng", Name: "English", DefaultPrice: decimal.NewFromInt(500)})
	store.PutParticipant(payment.Participant{ID: "p1", FullName: "Ana", ProgramID: "eng", StartPeriod: &start, Active: true})
	store.PutParticipant(payment.Participant{ID: "p2", FullName: "Budi", ProgramID: "eng", OverrideTariff: &override, StartPeriod: &start, Active: true})
	store.PutParticipant(payment.Participant{ID: "p3", FullName: "Citra", ProgramID: "eng", Active: false})
	store.PutParticipant(payment.Participant{ID: "p4", FullName: "Dedi", ProgramID: "eng", StartPeriod: &start, Active: true})

	planRepo := memory.NewPlanActualRepository(store)
	participantRepo := memory.NewParticipantRepository(store)
	source := finance.NewSource(planRepo, participantRepo, memory.NewExpenseRepository(store))
	return NewPaymentService(planRepo, participantRepo, source, money.DefaultPolicy, opts...)
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestUpsert_MergesIntoExistingRow(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	planned, err := svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024, PlanAmount: amount(450)})
	require.NoError(t, err)
	assert.Equal(t, "participant", planned.SubjectKind)
	assert.Equal(t, "eng", planned.Category)
	assert.Nil(t, planned.RealizedAt)

	realizedAt := "2024-03-15"
	paid, err := svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024, ActualAmount: amount(450), RealizedAt: &realizedAt})
	require.NoError(t, err)

	assert.Equal(t, planned.ID, paid.ID)
	require.NotNil(t, paid.PlanAmount)
	assert.True(t, paid.PlanAmount.Equal(decimal.NewFromInt(450)))
	assert.True(t, paid.ActualAmount.Equal(decimal.NewFromInt(450)))
	require.NotNil(t, paid.RealizedAt)
	assert.Equal(t, realizedAt, *paid.RealizedAt)
}

func TestUpsert_DefaultRealizedAtUsesClock(t *testing.T) {
	fixed := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	svc := newService(WithClock(func() time.Time { return fixed }))

	paid, err := svc.Upsert(context.Background(), payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024, ActualAmount: amount(500)})
	require.NoError(t, err)
	require.NotNil(t, paid.RealizedAt)
	assert.Equal(t, "2024-04-02", *paid.RealizedAt)
}

func TestUpsert_InvalidPeriod(t *testing.T) {
	svc := newService()

	_, err := svc.Upsert(context.Background(), payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 0, PeriodYear: 2024, ActualAmount: amount(1)})
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestUpsert_Errors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "ghost", PeriodMonth: 3, PeriodYear: 2024, ActualAmount: amount(1)})
	assert.ErrorIs(t, err, payment.ErrParticipantNotFound)

	_, err = svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024})
	assert.Error(t, err)

	_, err = svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024, PlanAmount: amount(-5)})
	assert.Error(t, err)
}

func TestUpsert_ExpenseForecastNormalizesCategory(t *testing.T) {
	svc := newService()

	resp, err := svc.Upsert(context.Background(), payment.UpsertPaymentRequest{
		SubjectKind: "expense_category", SubjectID: " Rent ", PeriodMonth: 3, PeriodYear: 2024, PlanAmount: amount(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "rent", resp.SubjectID)
	assert.Equal(t, "rent", resp.Category)
}

func TestListAnnotated(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p1", PeriodMonth: 3, PeriodYear: 2024, ActualAmount: amount(500)})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, payment.UpsertPaymentRequest{SubjectID: "p2", PeriodMonth: 3, PeriodYear: 2024, ActualAmount: amount(100)})
	require.NoError(t, err)

	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ListAnnotated(ctx, period.Period{Month: 3, Year: 2024}, now)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	rows := map[string]payment.AnnotatedPaymentResponse{}
	for _, r := range resp.Rows {
		rows[r.SubjectID] = r
	}

	assert.Equal(t, "paid", rows["p1"].Status)
	assert.Equal(t, "program_default", rows["p1"].PlanSource)

	assert.Equal(t, "partial", rows["p2"].Status)
	assert.Equal(t, "override_tariff", rows["p2"].PlanSource)
	assert.True(t, rows["p2"].Outstanding.Equal(decimal.NewFromInt(300)))

	// p4 has no stored row; the schedule still bills it
	assert.Equal(t, "overdue", rows["p4"].Status)
	assert.Nil(t, rows["p4"].RecordID)
	assert.NotContains(t, rows, "p3")

	assert.Equal(t, payment.StatusCounts{Paid: 1, Partial: 1, Overdue: 1}, resp.Counts)
	assert.True(t, resp.Outstanding.Equal(decimal.NewFromInt(800)))
}

func TestListAnnotated_CurrentMonthIsPending(t *testing.T) {
	svc := newService()

	now := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	resp, err := svc.ListAnnotated(context.Background(), period.Period{Month: 3, Year: 2024}, now)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Counts.Pending)
	assert.Zero(t, resp.Counts.Overdue)

	_, err = svc.ListAnnotated(context.Background(), period.Period{Month: 13, Year: 2024}, now)
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}
