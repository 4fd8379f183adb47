package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/workday"
)

type CalendarHandler interface {
	GetWorkingDays(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct{}

func NewCalendarHandler() CalendarHandler {
	return &calendarHandlerImpl{}
}

type workingDaysResponse struct {
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	WorkingDays int           `json:"working_days"`
	Days        []workday.Day `json:"days"`
}

func (h *calendarHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	p, err := periodQuery(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days, err := workday.Days(p.Year, p.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	count, err := workday.CountPeriod(p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workingDaysResponse{
		Month:       p.Month,
		Year:        p.Year,
		WorkingDays: count,
		Days:        days,
	})
}
