// Package finance folds plan/actual entries over period windows. Report,
// dashboard and payment listing all price and sum through here.
package finance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// OtherCategory is the bucket for entries without a known category.
const OtherCategory = string(expense.CategoryOther)

// Entry is one priced plan/actual amount for a subject and month.
type Entry struct {
	Kind        EntryKind
	RecordID    *string // nil when synthesized from the schedule
	SubjectID   string
	SubjectName string
	Category    string
	Period      period.Period
	Plan        decimal.Decimal
	PlanSource  payment.PlanSource
	Actual      decimal.Decimal
	RealizedAt  *time.Time
}

// Status derives the delinquency of the entry as seen at now.
func (e Entry) Status(now time.Time) payment.DelinquencyStatus {
	return payment.Classify(e.Plan, e.Actual, e.Period, now)
}

func (e Entry) Outstanding() decimal.Decimal {
	return payment.Outstanding(e.Plan, e.Actual)
}

type Totals struct {
	Plan           decimal.Decimal
	Actual         decimal.Decimal
	ByCategory     map[string]decimal.Decimal // actual amounts
	Count          int
	CompletionRate decimal.Decimal // percent, 0 when Plan is 0
}

// Aggregate sums the entries whose period lies in w (inclusive). Sums are
// not rounded; CompletionRate is.
func Aggregate(entries []Entry, w period.Window) Totals {
	t := Totals{
		Plan:       decimal.Zero,
		Actual:     decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, e := range entries {
		if !w.Contains(e.Period) {
			continue
		}
		t.Plan = t.Plan.Add(e.Plan)
		t.Actual = t.Actual.Add(e.Actual)
		t.Count++

		category := e.Category
		if category == "" {
			category = OtherCategory
		}
		t.ByCategory[category] = t.ByCategory[category].Add(e.Actual)
	}
	t.CompletionRate = money.Percent(t.Actual, t.Plan)
	return t
}

// Filter keeps the entries whose period lies in w.
func Filter(entries []Entry, w period.Window) []Entry {
	var out []Entry
	for _, e := range entries {
		if w.Contains(e.Period) {
			out = append(out, e)
		}
	}
	return out
}

// IncomeEntries prices participant rows through the resolver; other subject kinds are ignored.
func IncomeEntries(records []payment.PlanActualRecord, resolver payment.PlanResolver) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if r.SubjectKind != payment.SubjectParticipant {
			continue
		}
		plan, source := resolver.Resolve(r)

		e := Entry{
			Kind:       KindIncome,
			RecordID:   &r.ID,
			SubjectID:  r.SubjectID,
			Category:   r.Category,
			Period:     r.Period(),
			Plan:       plan,
			PlanSource: source,
			Actual:     r.ActualAmount,
			RealizedAt: r.RealizedAt,
		}
		if participant, ok := resolver.Participant(r.SubjectID); ok {
			e.SubjectName = participant.FullName
			if participant.ProgramID != "" {
				e.Category = participant.ProgramID
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// ExpensePlanEntries turns expense forecasts into plan-only entries.
func ExpensePlanEntries(records []payment.PlanActualRecord) []Entry {
	var entries []Entry
	for _, r := range records {
		if r.SubjectKind != payment.SubjectExpenseCategory {
			continue
		}
		plan, source := decimal.Zero, payment.PlanSourceNone
		if r.PlanAmount != nil {
			plan, source = *r.PlanAmount, payment.PlanSourceExplicit
		}
		category := string(expense.NormalizeCategory(r.SubjectID))
		entries = append(entries, Entry{
			Kind:       KindExpense,
			RecordID:   &r.ID,
			SubjectID:  category,
			Category:   category,
			Period:     r.Period(),
			Plan:       plan,
			PlanSource: source,
			Actual:     decimal.Zero,
		})
	}
	return entries
}

// ExpenseEntries turns booked expenses into actual-only entries in the month of their date.
func ExpenseEntries(records []expense.ExpenseRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		category := string(expense.NormalizeCategory(string(r.Category)))
		entries = append(entries, Entry{
			Kind:       KindExpense,
			RecordID:   &r.ID,
			SubjectID:  category,
			Category:   category,
			Period:     period.FromTime(r.ExpenseDate),
			Plan:       decimal.Zero,
			PlanSource: payment.PlanSourceNone,
			Actual:     r.Amount,
		})
	}
	return entries
}

type subjectMonth struct {
	subjectID string
	period    period.Period
}

// ExpandSchedule adds an unpaid entry for every month in w where an enrolled
// participant has no stored row, priced by the same resolver chain. The
// result is ordered by period, then subject.
func ExpandSchedule(entries []Entry, resolver payment.PlanResolver, w period.Window) []Entry {
	seen := make(map[subjectMonth]bool, len(entries))
	for _, e := range entries {
		if e.Kind == KindIncome {
			seen[subjectMonth{e.SubjectID, e.Period}] = true
		}
	}

	out := append([]Entry(nil), entries...)
	for _, participant := range resolver.Participants() {
		for _, m := range w.Months() {
			if !participant.EnrolledIn(m) || seen[subjectMonth{participant.ID, m}] {
				continue
			}
			plan, source := resolver.Resolve(payment.PlanActualRecord{
				SubjectKind: payment.SubjectParticipant,
				SubjectID:   participant.ID,
				Category:    participant.ProgramID,
				PeriodMonth: m.Month,
				PeriodYear:  m.Year,
			})
			out = append(out, Entry{
				Kind:        KindIncome,
				SubjectID:   participant.ID,
				SubjectName: participant.FullName,
				Category:    participant.ProgramID,
				Period:      m,
				Plan:        plan,
				PlanSource:  source,
				Actual:      decimal.Zero,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Period.Equal(out[j].Period) {
			return out[i].Period.Before(out[j].Period)
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}
