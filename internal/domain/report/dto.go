package report

import (
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// FINANCIAL REPORT (OPiU)
// ========================================

type FinancialReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *FinancialReportRequest) Validate() error {
	if errs := validator.PeriodErrors(r.Month, r.Year); len(errs) > 0 {
		return period.WithFieldErrors(errs)
	}
	return nil
}

type FinancialReport struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	GeneratedAt string `json:"generated_at"`

	Month      ReportSection `json:"month"`
	YearToDate ReportSection `json:"year_to_date"`
}

// ReportSection holds every figure for one window.
type ReportSection struct {
	From string `json:"from"` // YYYY-MM
	To   string `json:"to"`   // YYYY-MM

	Income       IncomeSummary      `json:"income"`
	Expenses     ExpenseSummary     `json:"expenses"`
	IFRS         IFRSMetrics        `json:"ifrs"`
	Delinquency  DelinquencySummary `json:"delinquency"`
	Programs     []ProgramRollup    `json:"programs"`
	Participants []ParticipantRow   `json:"participants,omitempty"`
}

type IncomeSummary struct {
	Plan           decimal.Decimal `json:"plan"`
	Actual         decimal.Decimal `json:"actual"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

type ExpenseSummary struct {
	Plan           decimal.Decimal            `json:"plan"`
	Actual         decimal.Decimal            `json:"actual"`
	ByCategory     map[string]decimal.Decimal `json:"by_category"`
	CompletionRate decimal.Decimal            `json:"completion_rate"`
}

type IFRSMetrics struct {
	RecognizedRevenue decimal.Decimal `json:"recognized_revenue"`
	DeferredRevenue   decimal.Decimal `json:"deferred_revenue"`
	Receivables       decimal.Decimal `json:"receivables"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	NetMargin         decimal.Decimal `json:"net_margin"`    // percent
	ExpenseRatio      decimal.Decimal `json:"expense_ratio"` // percent
}

type DelinquencySummary struct {
	Counts        payment.StatusCounts `json:"counts"`
	OverdueAmount decimal.Decimal      `json:"overdue_amount"`
}

type ProgramRollup struct {
	ProgramID      string          `json:"program_id"`
	ProgramName    string          `json:"program_name"`
	Participants   int             `json:"participants"`
	Plan           decimal.Decimal `json:"plan"`
	Actual         decimal.Decimal `json:"actual"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}

type ParticipantRow struct {
	ParticipantID string          `json:"participant_id"`
	FullName      string          `json:"full_name"`
	ProgramID     string          `json:"program_id"`
	Plan          decimal.Decimal `json:"plan"`
	PlanSource    string          `json:"plan_source"`
	Actual        decimal.Decimal `json:"actual"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
}
