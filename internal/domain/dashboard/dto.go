package dashboard

import (
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DashboardRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *DashboardRequest) Validate() error {
	if errs := validator.PeriodErrors(r.Month, r.Year); len(errs) > 0 {
		return period.WithFieldErrors(errs)
	}
	return nil
}

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	GeneratedAt string `json:"generated_at"`

	CurrentBalance   decimal.Decimal `json:"current_balance"`
	MonthlyRevenue   decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses  decimal.Decimal `json:"monthly_expenses"`
	BurnRate         decimal.Decimal `json:"burn_rate"`
	CashRunwayMonths decimal.Decimal `json:"cash_runway_months"` // 0 when balance or burn rate is not positive

	Trend []TrendPoint `json:"trend"` // oldest first
}

type TrendPoint struct {
	Month    string          `json:"month"` // Format: "YYYY-MM"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
