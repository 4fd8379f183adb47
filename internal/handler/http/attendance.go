package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	GetAbsenceSummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) GetAbsenceSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	p, err := periodQuery(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetAbsenceSummary(r.Context(), employeeID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
