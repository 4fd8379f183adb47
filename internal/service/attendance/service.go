package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/workday"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

type Option func(*AttendanceServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) { s.now = now }
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	opts ...Option,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AttendanceServiceImpl) Upsert(ctx context.Context, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	now := s.now()
	record, err := s.attendanceRepo.Upsert(ctx, attendance.AttendanceRecord{
		ID:            id.String(),
		EmployeeID:    req.EmployeeID,
		WorkDate:      req.ParsedDate,
		ShiftCategory: attendance.ShiftCategory(req.ShiftCategory),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}

func (s *AttendanceServiceImpl) CountAbsences(ctx context.Context, employeeID string, p period.Period, category attendance.ShiftCategory) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if !category.IsValid() {
		return 0, attendance.ErrInvalidShiftCategory
	}

	count, err := s.attendanceRepo.CountByCategory(ctx, employeeID, p, category)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s days: %w", category, err)
	}
	return count, nil
}

func (s *AttendanceServiceImpl) GetAbsenceSummary(ctx context.Context, employeeID string, p period.Period) (attendance.AbsenceSummaryResponse, error) {
	workingDays, err := workday.CountPeriod(p)
	if err != nil {
		return attendance.AbsenceSummaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.AbsenceSummaryResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, p)
	if err != nil {
		return attendance.AbsenceSummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	byCategory := make(map[string]int, len(attendance.ShiftCategories))
	for _, c := range attendance.ShiftCategories {
		byCategory[string(c)] = 0
	}
	for _, r := range records {
		byCategory[string(r.ShiftCategory)]++
	}

	return attendance.AbsenceSummaryResponse{
		EmployeeID:      employeeID,
		Month:           p.Month,
		Year:            p.Year,
		WorkingDays:     workingDays,
		UnpaidLeaveDays: byCategory[string(attendance.ShiftCategoryUnpaidLeave)],
		ByCategory:      byCategory,
	}, nil
}
