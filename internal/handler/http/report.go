package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetFinancialReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	clock         Clock
}

func NewReportHandler(reportService report.ReportService, clock Clock) ReportHandler {
	return &reportHandlerImpl{reportService: reportService, clock: clock}
}

// GetFinancialReport handles GET /reports/financial?month=&year=
func (h *reportHandlerImpl) GetFinancialReport(w http.ResponseWriter, r *http.Request) {
	p, err := periodQuery(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GenerateFinancialReport(r.Context(), report.FinancialReportRequest{Month: p.Month, Year: p.Year}, h.clock())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
