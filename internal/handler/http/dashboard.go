package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	clock            Clock
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, clock Clock) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, clock: clock}
}

// GetDashboard defaults to the current month when month and year are omitted.
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	query := r.URL.Query()

	monthStr, yearStr := query.Get("month"), query.Get("year")
	if monthStr == "" && yearStr == "" {
		monthStr = strconv.Itoa(int(now.Month()))
		yearStr = strconv.Itoa(now.Year())
	}
	p, err := periodQuery(monthStr, yearStr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), dashboard.DashboardRequest{Month: p.Month, Year: p.Year}, now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
