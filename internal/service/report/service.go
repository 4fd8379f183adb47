package report

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/service/finance"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	source *finance.Source
	policy money.Policy
}

func NewReportService(source *finance.Source, policy money.Policy) report.ReportService {
	return &ReportServiceImpl{
		source: source,
		policy: policy,
	}
}

// GenerateFinancialReport generates the OPiU report for the month and its year to date
func (s *ReportServiceImpl) GenerateFinancialReport(ctx context.Context, req report.FinancialReportRequest, now time.Time) (report.FinancialReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.FinancialReport{}, err
	}
	p, err := period.New(req.Month, req.Year)
	if err != nil {
		return report.FinancialReport{}, err
	}
	ytd := period.YearToDate(p)

	// One load for the widest window; both sections filter from it
	resolver, err := s.source.Resolver(ctx)
	if err != nil {
		return report.FinancialReport{}, err
	}
	income, err := s.source.Income(ctx, ytd, resolver)
	if err != nil {
		return report.FinancialReport{}, err
	}
	expenses, err := s.source.Expenses(ctx, ytd)
	if err != nil {
		return report.FinancialReport{}, err
	}

	return report.FinancialReport{
		PeriodMonth: p.Month,
		PeriodYear:  p.Year,
		GeneratedAt: now.Format(time.RFC3339),
		Month:       s.buildSection(period.Single(p), income, expenses, resolver, now, true),
		YearToDate:  s.buildSection(ytd, income, expenses, resolver, now, false),
	}, nil
}

func (s *ReportServiceImpl) buildSection(
	w period.Window,
	income, expenses []finance.Entry,
	resolver payment.PlanResolver,
	now time.Time,
	withParticipants bool,
) report.ReportSection {
	incomeTotals := finance.Aggregate(income, w)
	expenseTotals := finance.Aggregate(expenses, w)
	current := period.FromTime(now)

	recognized, deferred := decimal.Zero, decimal.Zero
	receivables, overdue := decimal.Zero, decimal.Zero
	var counts payment.StatusCounts

	programs := make(map[string]*programAccumulator)
	var participants []report.ParticipantRow

	for _, e := range finance.Filter(income, w) {
		if e.Period.After(current) {
			deferred = deferred.Add(e.Actual)
		} else {
			recognized = recognized.Add(e.Actual)
		}

		status := e.Status(now)
		counts.Add(status)
		outstanding := e.Outstanding()
		if status.IsReceivable() {
			receivables = receivables.Add(outstanding)
		}
		if status == payment.StatusOverdue {
			overdue = overdue.Add(outstanding)
		}

		programID := e.Category
		if programID == "" {
			programID = finance.OtherCategory
		}
		acc, ok := programs[programID]
		if !ok {
			acc = newProgramAccumulator()
			programs[programID] = acc
		}
		acc.add(e, outstanding)

		if withParticipants {
			participants = append(participants, report.ParticipantRow{
				ParticipantID: e.SubjectID,
				FullName:      e.SubjectName,
				ProgramID:     e.Category,
				Plan:          s.policy.Round(e.Plan),
				PlanSource:    string(e.PlanSource),
				Actual:        s.policy.Round(e.Actual),
				Outstanding:   s.policy.Round(outstanding),
				Status:        string(status),
			})
		}
	}

	netProfit := recognized.Sub(expenseTotals.Actual)

	return report.ReportSection{
		From: w.From.String(),
		To:   w.To.String(),
		Income: report.IncomeSummary{
			Plan:           s.policy.Round(incomeTotals.Plan),
			Actual:         s.policy.Round(incomeTotals.Actual),
			CompletionRate: incomeTotals.CompletionRate,
		},
		Expenses: report.ExpenseSummary{
			Plan:           s.policy.Round(expenseTotals.Plan),
			Actual:         s.policy.Round(expenseTotals.Actual),
			ByCategory:     s.roundMap(expenseTotals.ByCategory),
			CompletionRate: expenseTotals.CompletionRate,
		},
		IFRS: report.IFRSMetrics{
			RecognizedRevenue: s.policy.Round(recognized),
			DeferredRevenue:   s.policy.Round(deferred),
			Receivables:       s.policy.Round(receivables),
			NetProfit:         s.policy.Round(netProfit),
			NetMargin:         money.Percent(netProfit, recognized),
			ExpenseRatio:      money.Percent(expenseTotals.Actual, recognized),
		},
		Delinquency: report.DelinquencySummary{
			Counts:        counts,
			OverdueAmount: s.policy.Round(overdue),
		},
		Programs:     s.programRollups(programs, resolver),
		Participants: participants,
	}
}

type programAccumulator struct {
	participants map[string]bool
	plan         decimal.Decimal
	actual       decimal.Decimal
	outstanding  decimal.Decimal
}

func newProgramAccumulator() *programAccumulator {
	return &programAccumulator{
		participants: make(map[string]bool),
		plan:         decimal.Zero,
		actual:       decimal.Zero,
		outstanding:  decimal.Zero,
	}
}

func (a *programAccumulator) add(e finance.Entry, outstanding decimal.Decimal) {
	a.participants[e.SubjectID] = true
	a.plan = a.plan.Add(e.Plan)
	a.actual = a.actual.Add(e.Actual)
	a.outstanding = a.outstanding.Add(outstanding)
}

func (s *ReportServiceImpl) programRollups(programs map[string]*programAccumulator, resolver payment.PlanResolver) []report.ProgramRollup {
	ids := make([]string, 0, len(programs))
	for id := range programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rollups := make([]report.ProgramRollup, 0, len(ids))
	for _, id := range ids {
		acc := programs[id]
		name := ""
		if program, ok := resolver.Program(id); ok {
			name = program.Name
		}
		rollups = append(rollups, report.ProgramRollup{
			ProgramID:      id,
			ProgramName:    name,
			Participants:   len(acc.participants),
			Plan:           s.policy.Round(acc.plan),
			Actual:         s.policy.Round(acc.actual),
			Outstanding:    s.policy.Round(acc.outstanding),
			CompletionRate: money.Percent(acc.actual, acc.plan),
		})
	}
	return rollups
}

func (s *ReportServiceImpl) roundMap(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = s.policy.Round(v)
	}
	return out
}
