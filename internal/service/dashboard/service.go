package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/service/finance"
	"github.com/shopspring/decimal"
)

// TrendMonths is the length of the trailing series.
const TrendMonths = 6

type DashboardServiceImpl struct {
	source         *finance.Source
	openingBalance decimal.Decimal
	policy         money.Policy
}

func NewDashboardService(source *finance.Source, openingBalance decimal.Decimal, policy money.Policy) dashboard.DashboardService {
	return &DashboardServiceImpl{
		source:         source,
		openingBalance: openingBalance,
		policy:         policy,
	}
}

// Runway returns balance/burnRate in months, or 0 when either is not positive.
func Runway(balance, burnRate decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	return money.Ratio(balance, burnRate).Round(money.RatioPlaces)
}

// BurnRate is the month's expenses, or the average monthly expense of ytd when the month has none.
func BurnRate(monthExpenses, ytdExpenses decimal.Decimal, ytdMonths int) decimal.Decimal {
	if monthExpenses.IsPositive() {
		return monthExpenses
	}
	return money.Ratio(ytdExpenses, decimal.NewFromInt(int64(ytdMonths)))
}

// GetDashboard returns the metrics as of the end of the requested period
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest, now time.Time) (dashboard.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.DashboardResponse{}, err
	}
	p, err := period.New(req.Month, req.Year)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	// The balance needs every realized amount up to p
	history := period.Window{From: period.Period{Month: 1, Year: period.MinYear}, To: p}

	resolver, err := s.source.Resolver(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	income, err := s.source.StoredIncome(ctx, history, resolver)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	expenses, err := s.source.Expenses(ctx, history)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	balance := money.Sum(
		s.openingBalance,
		finance.Aggregate(income, history).Actual,
		finance.Aggregate(expenses, history).Actual.Neg(),
	)

	month := period.Single(p)
	monthlyRevenue := finance.Aggregate(income, month).Actual
	monthlyExpenses := finance.Aggregate(expenses, month).Actual

	ytd := period.YearToDate(p)
	burnRate := BurnRate(monthlyExpenses, finance.Aggregate(expenses, ytd).Actual, ytd.Len())

	trailing := period.Trailing(p, TrendMonths)
	trend := make([]dashboard.TrendPoint, 0, TrendMonths)
	for _, m := range trailing.Months() {
		revenue := finance.Aggregate(income, period.Single(m)).Actual
		spent := finance.Aggregate(expenses, period.Single(m)).Actual
		trend = append(trend, dashboard.TrendPoint{
			Month:    m.String(),
			Revenue:  s.policy.Round(revenue),
			Expenses: s.policy.Round(spent),
			Net:      s.policy.Round(revenue.Sub(spent)),
		})
	}

	return dashboard.DashboardResponse{
		PeriodMonth:      p.Month,
		PeriodYear:       p.Year,
		GeneratedAt:      now.Format(time.RFC3339),
		CurrentBalance:   s.policy.Round(balance),
		MonthlyRevenue:   s.policy.Round(monthlyRevenue),
		MonthlyExpenses:  s.policy.Round(monthlyExpenses),
		BurnRate:         s.policy.Round(burnRate),
		CashRunwayMonths: Runway(balance, burnRate),
		Trend:            trend,
	}, nil
}
